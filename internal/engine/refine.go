package engine

import (
	"sort"

	"lrdecomp/internal/align"
	"lrdecomp/internal/monomer"
)

// RefineConfig bounds the refinement search.
type RefineConfig struct {
	Pad   int // bases added on each side of the tentative call
	Floor int // a refined identity must exceed this to be kept
}

// Refine re-aligns every interval, most confident first, inside a padded
// window of unclaimed bases and tightens its boundaries. Calls that fail to
// re-align above the floor, or would cover claimed bases, are dropped. The
// result is sorted by start and non-overlapping.
func Refine(seq []byte, lib *monomer.Library, ivs []Interval, aligner align.Aligner, cfg RefineConfig) []Interval {
	n := len(seq)
	if n == 0 || len(ivs) == 0 {
		return nil
	}
	order := make([]Interval, len(ivs))
	copy(order, ivs)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Identity > order[j].Identity })

	claims := NewClaimTrack(n)
	out := make([]Interval, 0, len(ivs))
	for _, iv := range order {
		mi, ok := lib.Index(iv.Monomer)
		if !ok {
			continue
		}
		lo := claims.FreeRight(max(iv.Start-cfg.Pad, 0))
		hi := claims.FreeLeft(min(iv.End+cfg.Pad, n-1))
		if lo < 0 || hi < 0 || lo > hi {
			continue
		}
		r := aligner.Infix(lib.At(mi).Seq, seq[lo:hi+1])
		if !r.Matched || r.Identity <= cfg.Floor {
			continue
		}
		start, end := lo+r.Loc.Start, lo+r.Loc.End
		if claims.Overlaps(start, end) {
			continue
		}
		claims.Claim(start, end)

		iv.Start, iv.End, iv.Identity = start, end, r.Identity
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
