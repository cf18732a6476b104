package engine

import (
	"sync"

	"lrdecomp/internal/align"
	"lrdecomp/internal/kmer"
	"lrdecomp/internal/monomer"
	"lrdecomp/internal/score"
)

// Scoring modes.
const (
	ModeHash  = "hash"
	ModeExact = "exact"
)

// Config holds decomposition parameters.
type Config struct {
	Mode          string // hash (default) | exact
	KmerSize      int
	HashBase      uint64
	HashMod       uint64
	Window        int // hash-mode segment window; candidate start is i-Window
	HashFloor     int
	ExactFloor    int
	IdentityDiff  int     // alternates within this many points of the winner
	EditThreshold float64 // edit budget as a fraction of the monomer length
	RefinePad     int
	RefineFloor   int
	MaxChunk      int // longest chunk expected; sizes the shared k-mer index
}

// Engine decomposes chunks against an immutable library. It is safe for
// concurrent use: the only shared mutable state is the k-mer index.
type Engine struct {
	cfg     Config
	lib     *monomer.Library
	aligner align.Aligner

	mu  sync.Mutex
	idx *kmer.Index
}

// New creates a new Engine.
func New(lib *monomer.Library, c Config) *Engine {
	return &Engine{
		cfg:     c,
		lib:     lib,
		aligner: align.New(c.EditThreshold),
	}
}

// index returns a k-mer index able to hash sequences of n bases. One index
// sized to MaxChunk serves every chunk; it is rebuilt larger only when a
// longer sequence shows up.
func (e *Engine) index(n int) *kmer.Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.idx != nil && e.idx.Hasher.N >= n {
		return e.idx
	}
	if n < e.cfg.MaxChunk {
		n = e.cfg.MaxChunk
	}
	e.idx = kmer.Build(e.lib, n, kmer.Params{K: e.cfg.KmerSize, Base: e.cfg.HashBase, Mod: e.cfg.HashMod})
	return e.idx
}

// Scorer returns the configured scoring strategy over seq.
func (e *Engine) Scorer(seq []byte) score.Scorer {
	if e.cfg.Mode == ModeExact {
		return score.NewExact(e.lib, seq, e.aligner, e.cfg.ExactFloor)
	}
	return score.NewHash(e.index(len(seq)), seq, e.cfg.Window, e.cfg.HashFloor)
}

// Segment runs the DP over seq and returns the table with the tentative
// (unrefined) intervals.
func (e *Engine) Segment(seq []byte) (*State, []Interval) {
	st := Segment(e.lib, e.Scorer(seq), len(seq), e.cfg.IdentityDiff)
	return st, st.Backtrace(e.lib)
}

// Decompose processes one chunk end to end and returns refined intervals in
// chunk-local coordinates.
func (e *Engine) Decompose(readID string, offset int, seq []byte) []Interval {
	if len(seq) == 0 {
		return nil
	}
	_, ivs := e.Segment(seq)
	ivs = Refine(seq, e.lib, ivs, e.aligner, RefineConfig{Pad: e.cfg.RefinePad, Floor: e.cfg.RefineFloor})
	for i := range ivs {
		ivs[i].ReadID = readID
		ivs[i].ChunkOffset = offset
	}
	return ivs
}
