// Package fasta reads FASTA (optionally gzipped, or "-" for stdin) either as
// whole records or as overlapping per-record chunks.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Record is one FASTA entry with an upper-cased sequence.
type Record struct {
	ID  string
	Seq []byte
}

// scanRecords calls fn for every sequence line of every record; header is
// called once per record before its lines.
func scanRecords(r io.Reader, header func(id string) error, line func(seq []byte) error) error {
	br := bufio.NewReaderSize(r, 1<<16)
	for {
		raw, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("fasta read: %w", err)
		}
		eof := err == io.EOF
		raw = bytes.TrimRight(raw, "\r\n")
		if len(raw) > 0 {
			if raw[0] == '>' {
				if herr := header(parseHeaderID(raw[1:])); herr != nil {
					return herr
				}
			} else if lerr := line(bytes.ToUpper(bytes.TrimSpace(raw))); lerr != nil {
				return lerr
			}
		}
		if eof {
			return nil
		}
	}
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}

// ReadAll loads every record of path into memory.
func ReadAll(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var out []Record
	err = scanRecords(rc,
		func(id string) error {
			out = append(out, Record{ID: id})
			return nil
		},
		func(seq []byte) error {
			if len(out) == 0 {
				return fmt.Errorf("%s: sequence data before first header", path)
			}
			last := &out[len(out)-1]
			last.Seq = append(last.Seq, seq...)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of records in path without keeping sequences.
func Count(path string) (int, error) {
	rc, err := openReader(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()
	n := 0
	err = scanRecords(rc,
		func(string) error { n++; return nil },
		func([]byte) error { return nil },
	)
	return n, err
}
