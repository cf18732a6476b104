// Package align wraps bounded edit-distance queries in the three modes the
// decomposer needs and converts distances into integer identity percentages.
//
// A query never fails with an error: an empty input, a distance above the
// budget, or a negative identity all yield NoMatch.
package align

import "math"

// DefaultThreshold is the fraction of the pattern length allowed as edits.
const DefaultThreshold = 0.5

// Location is an inclusive range in the text.
type Location struct {
	Start int
	End   int
}

// Result is the outcome of one alignment query.
type Result struct {
	Identity int
	Loc      Location
	Matched  bool
}

// NoMatch is returned whenever no alignment satisfies the budget.
var NoMatch = Result{Identity: -1, Loc: Location{Start: -1, End: -1}}

// Aligner carries the edit budget. The zero value uses DefaultThreshold.
type Aligner struct {
	Threshold float64
}

// New returns an Aligner with the given threshold (≤0 selects the default).
func New(threshold float64) Aligner {
	return Aligner{Threshold: threshold}
}

func (a Aligner) budget(patLen int) int {
	th := a.Threshold
	if th <= 0 {
		th = DefaultThreshold
	}
	return int(math.Ceil(th * float64(patLen)))
}

func identity(d, den int) (int, bool) {
	id := 100 - 100*d/den
	if id < 0 {
		return -1, false
	}
	return id, true
}

// Global aligns p against t with both consumed end to end. Identity is
// normalised by the longer of the two.
func (a Aligner) Global(p, t []byte) Result {
	if len(p) == 0 || len(t) == 0 {
		return NoMatch
	}
	d, ok := globalDistance(p, t, a.budget(len(p)))
	if !ok {
		return NoMatch
	}
	den := len(p)
	if len(t) > den {
		den = len(t)
	}
	id, ok := identity(d, den)
	if !ok {
		return NoMatch
	}
	return Result{Identity: id, Loc: Location{Start: 0, End: len(t) - 1}, Matched: true}
}

// Infix aligns all of p somewhere inside t and reports the first optimal
// location: the smallest end, and for that end the longest span, so a match
// opens with mismatches rather than skipped text.
func (a Aligner) Infix(p, t []byte) Result {
	if len(p) == 0 || len(t) == 0 {
		return NoMatch
	}
	k := a.budget(len(p))
	d, end, ok := infixDistance(p, t, k)
	if !ok {
		return NoMatch
	}
	// walk back from end: reversed pattern anchored at the reversed text start
	back, ok := prefixLongest(reversed(p), reversed(t[:end+1]), d)
	if !ok {
		return NoMatch
	}
	id, ok := identity(d, len(p))
	if !ok {
		return NoMatch
	}
	return Result{Identity: id, Loc: Location{Start: end - back, End: end}, Matched: true}
}

// Suffix aligns all of p so that the match ends at the last base of t.
// Loc.Start is the match start in t.
func (a Aligner) Suffix(p, t []byte) Result {
	if len(p) == 0 || len(t) == 0 {
		return NoMatch
	}
	k := a.budget(len(p))
	// the match spans at most len(p)+k bases of t
	span := len(p) + k
	if span > len(t) {
		span = len(t)
	}
	d, end, ok := prefixDistance(reversed(p), reversed(t[len(t)-span:]), k)
	if !ok {
		return NoMatch
	}
	id, ok := identity(d, len(p))
	if !ok {
		return NoMatch
	}
	return Result{Identity: id, Loc: Location{Start: len(t) - 1 - end, End: len(t) - 1}, Matched: true}
}
