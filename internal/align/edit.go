package align

// Bounded Levenshtein distance kernels. Columns run over the text, rows over
// the pattern; only one column is kept. All kernels return ok=false when no
// alignment within k exists. Text end positions are 0-based and inclusive.

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// globalDistance aligns p and t end to end.
func globalDistance(p, t []byte, k int) (int, bool) {
	m, n := len(p), len(t)
	if absInt(m-n) > k {
		return 0, false
	}
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= n; j++ {
		cur[0] = j
		colMin := cur[0]
		tj := t[j-1]
		for i := 1; i <= m; i++ {
			cost := 1
			if p[i-1] == tj {
				cost = 0
			}
			cur[i] = minOf(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
			if cur[i] < colMin {
				colMin = cur[i]
			}
		}
		if colMin > k {
			return 0, false
		}
		prev, cur = cur, prev
	}
	if prev[m] > k {
		return 0, false
	}
	return prev[m], true
}

// infixDistance finds p anywhere inside t. It returns the smallest end
// position among the optimal alignments.
func infixDistance(p, t []byte, k int) (d, end int, ok bool) {
	m, n := len(p), len(t)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	d, end = k+1, -1
	for j := 1; j <= n; j++ {
		cur[0] = 0
		tj := t[j-1]
		for i := 1; i <= m; i++ {
			cost := 1
			if p[i-1] == tj {
				cost = 0
			}
			cur[i] = minOf(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
		}
		if cur[m] < d {
			d, end = cur[m], j-1
		}
		prev, cur = cur, prev
	}
	if end < 0 {
		return 0, -1, false
	}
	return d, end, true
}

// prefixScan anchors p at the start of t and leaves the tail of t free. It
// calls visit with every end position and its distance until no alignment
// within k can extend further.
func prefixScan(p, t []byte, k int, visit func(end, d int)) {
	m, n := len(p), len(t)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= n; j++ {
		cur[0] = j
		colMin := cur[0]
		tj := t[j-1]
		for i := 1; i <= m; i++ {
			cost := 1
			if p[i-1] == tj {
				cost = 0
			}
			cur[i] = minOf(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
			if cur[i] < colMin {
				colMin = cur[i]
			}
		}
		visit(j-1, cur[m])
		if colMin > k {
			return
		}
		prev, cur = cur, prev
	}
}

// prefixDistance returns the optimal prefix distance and the smallest end
// position reaching it.
func prefixDistance(p, t []byte, k int) (d, end int, ok bool) {
	d, end = k+1, -1
	prefixScan(p, t, k, func(j, dist int) {
		if dist < d {
			d, end = dist, j
		}
	})
	if end < 0 {
		return 0, -1, false
	}
	return d, end, true
}

// prefixLongest returns the largest end position whose prefix distance is
// at most d.
func prefixLongest(p, t []byte, d int) (end int, ok bool) {
	end = -1
	prefixScan(p, t, d, func(j, dist int) {
		if dist <= d {
			end = j
		}
	})
	return end, end >= 0
}

func reversed(s []byte) []byte {
	out := make([]byte, len(s))
	for i, b := range s {
		out[len(s)-1-i] = b
	}
	return out
}
