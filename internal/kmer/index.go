package kmer

import "lrdecomp/internal/monomer"

// Table counts the occurrences of each k-mer hash within one monomer.
type Table map[uint64]uint32

// Index holds one Table per library monomer, in library order. It is tied
// to the Hasher capacity it was built with and is read-only afterwards.
type Index struct {
	Hasher *Hasher
	Tables []Table
}

// Params selects the k-mer length and hash ring.
type Params struct {
	K    int
	Base uint64
	Mod  uint64
}

// Build hashes every monomer of lib for sequences up to n bases. n is raised
// to the longest monomer if needed.
func Build(lib *monomer.Library, n int, p Params) *Index {
	if m := lib.MaxLen(); m > n {
		n = m
	}
	h := NewHasher(p.K, n, p.Base, p.Mod)
	idx := &Index{Hasher: h, Tables: make([]Table, lib.Len())}
	for i := 0; i < lib.Len(); i++ {
		hashes, valid := h.Windows(lib.At(i).Seq)
		t := make(Table, len(hashes))
		for j, v := range hashes {
			if valid[j] {
				t[v]++
			}
		}
		idx.Tables[i] = t
	}
	return idx
}

// Common returns the prefix count of read windows found in t: out[i] is the
// number of valid windows ending at or before i whose hash is in t.
func Common(hashes []uint64, valid []bool, t Table) []int32 {
	out := make([]int32, len(hashes))
	var acc int32
	for i, v := range hashes {
		if valid[i] {
			if _, ok := t[v]; ok {
				acc++
			}
		}
		out[i] = acc
	}
	return out
}

// WindowScore is the number of shared windows ending in (i-w, i]. It is
// defined only for i ≥ w.
func WindowScore(common []int32, i, w int) (int, bool) {
	if i < w || i >= len(common) {
		return 0, false
	}
	return int(common[i] - common[i-w]), true
}
