// Package app wires the decomposer together: it loads the library, runs the
// chunk pipeline, merges calls per read and streams them to the output files.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"lrdecomp/internal/cmdutil"
	"lrdecomp/internal/config"
	"lrdecomp/internal/engine"
	"lrdecomp/internal/fasta"
	"lrdecomp/internal/merge"
	"lrdecomp/internal/monomer"
	"lrdecomp/internal/output"
	"lrdecomp/internal/pipeline"
	"lrdecomp/internal/runutil"
	"lrdecomp/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitConfig    = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// Options is everything a run needs besides the tunables.
type Options struct {
	ReadsPath    string
	MonomersPath string
	OutPath      string

	Threads  int
	Header   bool
	Progress bool
	Quiet    bool

	NoMatchExitCode int

	Params config.Params
}

// EngineConfig maps the tunables onto the engine.
func EngineConfig(p config.Params) engine.Config {
	return engine.Config{
		Mode:          p.Mode,
		KmerSize:      p.KmerSize,
		HashBase:      p.HashBase,
		HashMod:       p.HashMod,
		Window:        p.Window,
		HashFloor:     p.HashFloor,
		ExactFloor:    p.ExactFloor,
		IdentityDiff:  p.IdentityDiff,
		EditThreshold: p.EditThreshold,
		RefinePad:     p.RefinePad,
		RefineFloor:   p.RefineFloor,
		MaxChunk:      p.ChunkSize + p.ChunkOverlap,
	}
}

// MergeConfig maps the tunables onto the merger.
func MergeConfig(p config.Params) merge.Config {
	return merge.Config{MaxGap: p.MergeDistance, Window: p.FlagWindow, Threshold: p.FlagThreshold}
}

// Stats summarizes a run.
type Stats struct {
	Reads  int
	Chunks int
	Calls  int
}

// Run decomposes every read and returns the process exit code.
func Run(ctx context.Context, stdout, stderr io.Writer, o Options) int {
	st, err := Decompose(ctx, stdout, stderr, o)
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, config.ErrConfig):
		fmt.Fprintln(stderr, "error:", err)
		return ExitConfig
	case writers.IsBrokenPipe(err):
		return ExitOK
	case err != nil:
		fmt.Fprintln(stderr, "error:", err)
		return ExitRuntime
	}
	cmdutil.Infof(stderr, o.Quiet, "decomposed %s reads (%s chunks) into %s monomer calls",
		humanize.Comma(int64(st.Reads)), humanize.Comma(int64(st.Chunks)), humanize.Comma(int64(st.Calls)))
	if st.Calls == 0 {
		return o.NoMatchExitCode
	}
	return ExitOK
}

// Decompose runs the whole job and reports what was produced. An OutPath of
// "-" sends the main table to stdout and skips the alternates table. Errors
// wrap config.ErrConfig for unusable inputs.
func Decompose(ctx context.Context, stdout, stderr io.Writer, o Options) (Stats, error) {
	var st Stats
	if err := o.Params.Validate(); err != nil {
		return st, err
	}
	if o.ReadsPath == "" || o.MonomersPath == "" {
		return st, config.Errorf("both reads and monomers are required")
	}
	if o.ReadsPath != "-" {
		if _, err := os.Stat(o.ReadsPath); err != nil {
			return st, config.Errorf("reads: %v", err)
		}
	}

	lib, err := monomer.Load(o.MonomersPath)
	if err != nil {
		return st, err
	}
	cmdutil.Infof(stderr, o.Quiet, "loaded %s monomers (%s with reverse complements), longest %s bp",
		humanize.Comma(int64(lib.Len()/2)), humanize.Comma(int64(lib.Len())), humanize.Comma(int64(lib.MaxLen())))

	p := o.Params
	chunk, warns := runutil.ValidateChunking(p.ChunkSize, p.ChunkOverlap, p.MinChunk, lib.MaxLen())
	for _, w := range warns {
		cmdutil.Warnf(stderr, o.Quiet, "%s", w)
	}

	var bar *pb.ProgressBar
	if o.Progress && !o.Quiet {
		if o.ReadsPath == "-" {
			cmdutil.Warnf(stderr, o.Quiet, "--progress needs a reads file; disabled for stdin")
		} else if total, err := fasta.Count(o.ReadsPath); err != nil {
			return st, err
		} else {
			bar = pb.Full.New(total).SetWriter(stderr).Start()
			defer bar.Finish()
		}
	}

	outF, altF, err := createOutputs(o.OutPath, stdout)
	if err != nil {
		return st, err
	}
	in, writeErr := writers.StartCallWriter(outF, altF, o.Header, 4)

	perr := run(ctx, o, lib, chunk, in, bar, &st)
	close(in)
	werr := <-writeErr

	cerr := closeOutputs(outF, altF)
	switch {
	case perr != nil:
		return st, perr
	case werr != nil:
		return st, fmt.Errorf("write %s: %w", o.OutPath, werr)
	case cerr != nil:
		return st, cerr
	}
	if bar != nil {
		bar.SetCurrent(bar.Total())
	}
	return st, nil
}

// run drives the pipeline and sends merged calls to the writer in batches of
// BatchSize chunks and at every read end.
func run(ctx context.Context, o Options, lib *monomer.Library, chunk fasta.ChunkOptions,
	in chan<- []merge.Call, bar *pb.ProgressBar, st *Stats) error {
	eng := engine.New(lib, EngineConfig(o.Params))

	var batch []merge.Call
	send := func() error {
		if len(batch) == 0 {
			return nil
		}
		select {
		case in <- batch:
			batch = nil
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m := merge.NewMerger(MergeConfig(o.Params), func(c merge.Call) error {
		batch = append(batch, c)
		st.Calls++
		return nil
	})
	endRead := func() error {
		if err := m.Flush(); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
		return send()
	}

	curRead := -1
	err := pipeline.ForEachChunk(ctx,
		pipeline.Config{Threads: runutil.EffectiveThreads(o.Threads), Chunk: chunk},
		o.ReadsPath, eng,
		func(r pipeline.ChunkResult) error {
			if r.ReadIndex != curRead {
				if curRead >= 0 {
					if err := endRead(); err != nil {
						return err
					}
				}
				curRead = r.ReadIndex
				st.Reads++
			}
			st.Chunks++
			for _, c := range merge.FromIntervals(r.Intervals) {
				if err := m.Add(c); err != nil {
					return err
				}
			}
			if st.Chunks%o.Params.BatchSize == 0 {
				return send()
			}
			return nil
		})
	if err != nil {
		return err
	}
	if curRead >= 0 {
		return endRead()
	}
	return nil
}

func createOutputs(path string, stdout io.Writer) (io.WriteCloser, io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil, nil
	}
	outF, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	altF, err := os.Create(output.AltPath(path))
	if err != nil {
		_ = outF.Close()
		return nil, nil, fmt.Errorf("create alternates output: %w", err)
	}
	return outF, altF, nil
}

func closeOutputs(outF, altF io.WriteCloser) error {
	err := outF.Close()
	if altF != nil {
		if e := altF.Close(); err == nil {
			err = e
		}
	}
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
