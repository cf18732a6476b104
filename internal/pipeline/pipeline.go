package pipeline

import (
	"context"
	"sync"

	"lrdecomp/internal/engine"
	"lrdecomp/internal/fasta"
)

// Config controls the decomposition pipeline.
type Config struct {
	Threads int                // number of worker goroutines (>=1)
	Chunk   fasta.ChunkOptions // read windowing
}

// ChunkResult is the outcome of one chunk. Seq is dropped once decomposed.
type ChunkResult struct {
	ReadIndex int
	ReadID    string
	Index     int // chunk ordinal within the read
	Offset    int
	Len       int
	Intervals []engine.Interval
}

// ForEachChunk decomposes every chunk of readsPath and calls visit once per
// chunk, in file order, regardless of which worker finished first.
// It returns the first error encountered (including context cancellation).
func ForEachChunk(
	ctx context.Context,
	cfg Config,
	readsPath string,
	dec Decomposer,
	visit func(ChunkResult) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		seq   int
		chunk fasta.Chunk
	}
	type result struct {
		seq int
		res ChunkResult
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)
	// bounds how far the feeder may run ahead of in-order delivery
	inflight := make(chan struct{}, cfg.Threads*4)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					c := j.chunk
					r := result{seq: j.seq, res: ChunkResult{
						ReadIndex: c.ReadIndex,
						ReadID:    c.ReadID,
						Index:     c.Index,
						Offset:    c.Offset,
						Len:       len(c.Seq),
						Intervals: dec.Decompose(c.ReadID, c.Offset, c.Seq),
					}}
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: restores chunk order
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		next := 0
		held := make(map[int]ChunkResult, cfg.Threads*4)
		for r := range results {
			held[r.seq] = r.res
			for {
				res, ok := held[next]
				if !ok {
					break
				}
				delete(held, next)
				next++
				<-inflight
				if cerr != nil {
					continue
				}
				if err := visit(res); err != nil {
					cerr = err
					cancel()
				}
			}
		}
	}()

	// Feed work
	seq := 0
	serr := fasta.StreamChunks(ctx, readsPath, cfg.Chunk, func(c fasta.Chunk) error {
		select {
		case inflight <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
		select {
		case jobs <- job{seq: seq, chunk: c}:
			seq++
			return nil
		case <-ctx.Done():
			<-inflight
			return ctx.Err()
		}
	})

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	// cancel has only run on a visit error, so this is the caller's context
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return serr
}
