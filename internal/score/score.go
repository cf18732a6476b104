// Package score provides the per-(monomer, end position) identity signals
// consumed by the segmentation DP. Both strategies share one contract so the
// DP never knows which one it runs on.
package score

import (
	"lrdecomp/internal/align"
	"lrdecomp/internal/kmer"
	"lrdecomp/internal/monomer"
)

// Candidate is a scored placement of one monomer ending at some position.
type Candidate struct {
	Identity int
	Start    int
	Matched  bool
}

// Scorer scores monomer m (library index) ending at read position i.
type Scorer interface {
	// Score returns the candidate for m ending at i; Matched is false when
	// no placement exists.
	Score(m, i int) Candidate
	// Alternate scores m over read[start..i] for alternate reporting; -1
	// means no match.
	Alternate(m, start, i int) int
	// Floor is the identity a candidate must exceed to be used.
	Floor() int
}

// Hash scores each monomer by the number of shared k-mers in a fixed window.
// Scores are k-mer counts, comparable between monomers but not percentages.
type Hash struct {
	window int
	floor  int
	scores [][]int32 // per monomer, per end position; -1 where undefined
}

// NewHash precomputes window scores for every monomer of idx over read.
func NewHash(idx *kmer.Index, read []byte, window, floor int) *Hash {
	hashes, valid := idx.Hasher.Windows(read)
	h := &Hash{window: window, floor: floor, scores: make([][]int32, len(idx.Tables))}
	for m, t := range idx.Tables {
		common := kmer.Common(hashes, valid, t)
		row := make([]int32, len(read))
		for i := range row {
			if s, ok := kmer.WindowScore(common, i, window); ok {
				row[i] = int32(s)
			} else {
				row[i] = -1
			}
		}
		h.scores[m] = row
	}
	return h
}

func (h *Hash) Score(m, i int) Candidate {
	s := h.scores[m][i]
	if s < 0 {
		return Candidate{Identity: -1, Start: -1}
	}
	return Candidate{Identity: int(s), Start: i - h.window, Matched: true}
}

func (h *Hash) Alternate(m, _, i int) int { return int(h.scores[m][i]) }

func (h *Hash) Floor() int { return h.floor }

// Exact scores each monomer with an end-anchored edit-distance alignment.
// It is the reference signal the hash mode approximates, at
// O(|read|·|library|) alignments per chunk.
type Exact struct {
	lib     *monomer.Library
	read    []byte
	aligner align.Aligner
	floor   int
}

// NewExact returns an exact-mode scorer over read.
func NewExact(lib *monomer.Library, read []byte, aligner align.Aligner, floor int) *Exact {
	return &Exact{lib: lib, read: read, aligner: aligner, floor: floor}
}

func (e *Exact) Score(m, i int) Candidate {
	r := e.aligner.Suffix(e.lib.At(m).Seq, e.read[:i+1])
	if !r.Matched {
		return Candidate{Identity: -1, Start: -1}
	}
	return Candidate{Identity: r.Identity, Start: r.Loc.Start, Matched: true}
}

func (e *Exact) Alternate(m, start, i int) int {
	if start < 0 {
		start = 0
	}
	return e.aligner.Global(e.lib.At(m).Seq, e.read[start:i+1]).Identity
}

func (e *Exact) Floor() int { return e.floor }
