package engine

import "sort"

type span struct{ lo, hi int } // inclusive

// ClaimTrack records which positions of a chunk are already assigned to a
// refined interval. Claimed ranges are kept sorted, disjoint and
// non-adjacent, so every query is a binary search.
type ClaimTrack struct {
	n     int
	spans []span
}

// NewClaimTrack returns an empty track over positions [0, n).
func NewClaimTrack(n int) *ClaimTrack { return &ClaimTrack{n: n} }

// find returns the index of the first span with hi >= pos.
func (c *ClaimTrack) find(pos int) int {
	return sort.Search(len(c.spans), func(i int) bool { return c.spans[i].hi >= pos })
}

func (c *ClaimTrack) claimed(pos int) (span, bool) {
	i := c.find(pos)
	if i < len(c.spans) && c.spans[i].lo <= pos {
		return c.spans[i], true
	}
	return span{}, false
}

// FreeRight returns the nearest unclaimed position at or after pos, or -1.
func (c *ClaimTrack) FreeRight(pos int) int {
	if pos < 0 || pos >= c.n {
		return -1
	}
	if s, ok := c.claimed(pos); ok {
		if s.hi+1 >= c.n {
			return -1
		}
		return s.hi + 1
	}
	return pos
}

// FreeLeft returns the nearest unclaimed position at or before pos, or -1.
func (c *ClaimTrack) FreeLeft(pos int) int {
	if pos < 0 || pos >= c.n {
		return -1
	}
	if s, ok := c.claimed(pos); ok {
		return s.lo - 1
	}
	return pos
}

// Overlaps reports whether any position of [lo, hi] is claimed.
func (c *ClaimTrack) Overlaps(lo, hi int) bool {
	i := c.find(lo)
	return i < len(c.spans) && c.spans[i].lo <= hi
}

// Claim marks [lo, hi] as assigned, merging with touching ranges.
func (c *ClaimTrack) Claim(lo, hi int) {
	if lo > hi {
		return
	}
	i := c.find(lo - 1) // first span that touches or follows lo
	j := i
	for j < len(c.spans) && c.spans[j].lo <= hi+1 {
		if c.spans[j].lo < lo {
			lo = c.spans[j].lo
		}
		if c.spans[j].hi > hi {
			hi = c.spans[j].hi
		}
		j++
	}
	merged := append([]span{{lo, hi}}, c.spans[j:]...)
	c.spans = append(c.spans[:i], merged...)
}
