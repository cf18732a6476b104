package writers

import (
	"bufio"
	"io"

	"lrdecomp/internal/merge"
	"lrdecomp/internal/output"
)

// StartCallWriter spins up a writer goroutine for batches of calls. Main rows
// go to out and alternate rows to alt (nil disables the alternates table).
// Both streams are flushed after every batch. The error channel yields the
// first write error once the input is closed.
func StartCallWriter(out, alt io.Writer, header bool, bufSize int) (chan<- []merge.Call, <-chan error) {
	if bufSize <= 0 {
		bufSize = 4
	}
	in := make(chan []merge.Call, bufSize)
	errCh := make(chan error, 1)

	go func() {
		mw := bufio.NewWriter(out)
		var aw *bufio.Writer
		if alt != nil {
			aw = bufio.NewWriter(alt)
		}

		var err error
		if header {
			_, err = io.WriteString(mw, output.TSVHeader+"\n")
			if err == nil && aw != nil {
				_, err = io.WriteString(aw, output.AltTSVHeader+"\n")
			}
		}
		for batch := range in {
			if err != nil {
				continue // drain so senders never block
			}
			err = writeBatch(mw, aw, batch)
		}
		errCh <- err
	}()

	return in, errCh
}

func writeBatch(mw, aw *bufio.Writer, batch []merge.Call) error {
	if err := output.WriteCalls(mw, batch); err != nil {
		return err
	}
	if err := mw.Flush(); err != nil {
		return err
	}
	if aw == nil {
		return nil
	}
	if err := output.WriteAlts(aw, batch); err != nil {
		return err
	}
	return aw.Flush()
}
