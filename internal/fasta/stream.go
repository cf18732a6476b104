package fasta

import (
	"bytes"
	"context"
	"fmt"
)

// Chunk is a window of a single read. Offset is 0-based within the read.
type Chunk struct {
	ReadIndex int    // ordinal of the read in the file
	ReadID    string // record identifier
	Index     int    // ordinal of the chunk within its read
	Offset    int
	Seq       []byte
}

// ChunkOptions controls windowing. A window starts every Step bases and is
// Step+Overlap long; windows shorter than MinLen are skipped. Step 0 emits
// whole records (still subject to MinLen).
type ChunkOptions struct {
	Step    int
	Overlap int
	MinLen  int
}

// StreamChunks parses path and calls emit for every window, in file order.
// It returns promptly when ctx is done.
func StreamChunks(ctx context.Context, path string, opt ChunkOptions, emit func(Chunk) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	win := opt.Step + opt.Overlap
	slide := opt.Step

	var (
		readIdx    = -1
		id         string
		buf        []byte
		startCoord int
		chunkIdx   int
	)

	flushWindow := func(seq []byte) error {
		if len(seq) == 0 || len(seq) < opt.MinLen {
			return nil
		}
		c := Chunk{
			ReadIndex: readIdx,
			ReadID:    id,
			Index:     chunkIdx,
			Offset:    startCoord,
			Seq:       bytes.Clone(seq), // workers may keep it
		}
		chunkIdx++
		return emit(c)
	}

	// flushTail emits the remaining windows of the current record.
	flushTail := func() error {
		if readIdx < 0 {
			return nil
		}
		if opt.Step <= 0 {
			return flushWindow(buf)
		}
		for len(buf) > 0 {
			end := len(buf)
			if end > win {
				end = win
			}
			if err := flushWindow(buf[:end]); err != nil {
				return err
			}
			if len(buf) <= slide {
				break
			}
			buf = buf[slide:]
			startCoord += slide
		}
		return nil
	}

	err = scanRecords(rc,
		func(hdr string) error {
			if err := flushTail(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			readIdx++
			id = hdr
			buf = buf[:0]
			startCoord = 0
			chunkIdx = 0
			return nil
		},
		func(line []byte) error {
			if readIdx < 0 {
				return fmt.Errorf("%s: sequence data before first header", path)
			}
			for len(line) > 0 {
				rem := len(line)
				if opt.Step > 0 && win-len(buf) < rem {
					rem = win - len(buf)
				}
				buf = append(buf, line[:rem]...)
				line = line[rem:]

				if opt.Step > 0 && len(buf) == win {
					if err := flushWindow(buf); err != nil {
						return err
					}
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
					startCoord += slide
					buf = append([]byte(nil), buf[slide:]...)
				}
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	return flushTail()
}
