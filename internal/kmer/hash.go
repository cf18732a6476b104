// Package kmer implements the polynomial rolling-hash k-mer index used as a
// fast identity proxy. Hash collisions are accepted: the signal only has to
// rank candidates, not prove them.
package kmer

var code [256]uint64

func init() {
	code['A'], code['a'] = 1, 1
	code['C'], code['c'] = 2, 2
	code['G'], code['g'] = 3, 3
	code['T'], code['t'] = 4, 4
}

// Hasher hashes k-mers of sequences no longer than N so that equal k-mers
// hash equally regardless of where they occur.
type Hasher struct {
	K    int
	N    int
	Base uint64
	Mod  uint64
	pow  []uint64
}

// NewHasher precomputes Base^i mod Mod for i < n. Mod must be below 2^32 so
// products stay inside uint64.
func NewHasher(k, n int, base, mod uint64) *Hasher {
	if n < 1 {
		n = 1
	}
	pow := make([]uint64, n)
	pow[0] = 1
	for i := 1; i < n; i++ {
		pow[i] = pow[i-1] * base % mod
	}
	return &Hasher{K: k, N: n, Base: base, Mod: mod, pow: pow}
}

// Windows returns, for every end position e, the canonical hash of the k-mer
// seq[e-K+1..e]. valid[e] is false for the first K-1 positions and for any
// window holding a non-ACGT byte. len(seq) must not exceed N.
func (h *Hasher) Windows(seq []byte) (hashes []uint64, valid []bool) {
	n := len(seq)
	hashes = make([]uint64, n)
	valid = make([]bool, n)
	if n > h.N {
		panic("kmer: sequence longer than hasher capacity")
	}
	prefix := make([]uint64, n+1)
	lastBad := -1
	for i := 0; i < n; i++ {
		c := code[seq[i]]
		if c == 0 {
			lastBad = i
		}
		prefix[i+1] = (prefix[i] + c*h.pow[i]) % h.Mod
		s := i - h.K + 1
		if s < 0 || lastBad >= s {
			continue
		}
		// shift every window to the same top power
		w := (prefix[i+1] + h.Mod - prefix[s]) % h.Mod
		hashes[i] = w * h.pow[h.N-1-s] % h.Mod
		valid[i] = true
	}
	return hashes, valid
}
