package pipeline

import "lrdecomp/internal/engine"

// Decomposer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Decomposer interface {
	Decompose(readID string, offset int, seq []byte) []engine.Interval
}
