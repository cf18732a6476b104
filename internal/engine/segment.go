package engine

import (
	"sort"

	"lrdecomp/internal/monomer"
	"lrdecomp/internal/score"
)

// noCall marks a DP position that inherits the previous state.
const noCall = -1

// State is the per-chunk DP table. All slices are indexed by read position.
type State struct {
	Score   []int   // best cumulative score, non-decreasing
	Back    []int   // segment start for calls, i-1 for inherited positions
	Monomer []int   // library index of the call ending here, or noCall
	Alts    [][]Alt // alternates of the call ending here
}

func (s *State) prev(j int) int {
	if j < 0 {
		return 0
	}
	return s.Score[j]
}

// Segment runs the maximum-score decomposition DP over n positions.
func Segment(lib *monomer.Library, sc score.Scorer, n, identityDiff int) *State {
	st := &State{
		Score:   make([]int, n),
		Back:    make([]int, n),
		Monomer: make([]int, n),
		Alts:    make([][]Alt, n),
	}
	floor := sc.Floor()
	for i := 0; i < n; i++ {
		bestTotal, bestStart, bestM := -1, -1, noCall
		for m := 0; m < lib.Len(); m++ {
			c := sc.Score(m, i)
			if !c.Matched || c.Identity <= floor {
				continue
			}
			if total := c.Identity + st.prev(c.Start-1); total > bestTotal {
				bestTotal, bestStart, bestM = total, c.Start, m
			}
		}

		// monotonicity guard: a tie keeps the new call
		inherited := st.prev(i - 1)
		if bestM == noCall || bestTotal < inherited {
			st.Score[i], st.Back[i], st.Monomer[i] = inherited, i-1, noCall
			continue
		}
		st.Score[i], st.Back[i], st.Monomer[i] = bestTotal, bestStart, bestM

		base := bestTotal - st.prev(bestStart-1)
		var alts []Alt
		for m := 0; m < lib.Len(); m++ {
			a := sc.Alternate(m, bestStart, i)
			if a >= 0 && a >= base-identityDiff {
				alts = append(alts, Alt{Monomer: lib.At(m).Name, Score: a})
			}
		}
		sort.SliceStable(alts, func(x, y int) bool { return alts[x].Score > alts[y].Score })
		st.Alts[i] = alts
	}
	return st
}

// Backtrace walks the backpointers from the last position and returns the
// called segments in read order. Identity is the call's own score.
func (s *State) Backtrace(lib *monomer.Library) []Interval {
	var out []Interval
	i := len(s.Score) - 1
	for i >= 0 {
		if s.Monomer[i] == noCall {
			// one null segment for the whole run
			for i >= 0 && s.Monomer[i] == noCall {
				i--
			}
			continue
		}
		start := s.Back[i]
		out = append(out, Interval{
			Monomer:  lib.At(s.Monomer[i]).Name,
			Start:    start,
			End:      i,
			Identity: s.Score[i] - s.prev(start-1),
			Alts:     s.Alts[i],
		})
		i = start - 1
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
