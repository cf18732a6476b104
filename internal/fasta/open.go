package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

const readBufSize = 1 << 20

// source is a buffered input that closes every layer beneath it.
type source struct {
	*bufio.Reader
	layers []io.Closer
}

func (s *source) Close() error {
	var first error
	for _, c := range s.layers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens path ("-" is stdin). Gzip input is recognised by its magic
// bytes, so compressed data works on stdin too.
func openReader(path string) (io.ReadCloser, error) {
	var raw io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		raw = fh
	}
	br := bufio.NewReaderSize(raw, readBufSize)
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			_ = raw.Close()
			return nil, err
		}
		return &source{Reader: bufio.NewReaderSize(gz, readBufSize), layers: []io.Closer{gz, raw}}, nil
	}
	return &source{Reader: br, layers: []io.Closer{raw}}, nil
}
