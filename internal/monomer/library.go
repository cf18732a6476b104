// Package monomer holds the immutable monomer library shared by all workers.
package monomer

import (
	"strings"

	"lrdecomp/internal/config"
	"lrdecomp/internal/fasta"
)

// RCSuffix marks the synthesized reverse-complement variant of a monomer.
const RCSuffix = "'"

// Monomer is a named reference sequence.
type Monomer struct {
	Name string
	Seq  []byte
}

// Library is an ordered list of monomers plus a name index. Every input
// monomer is followed by its reverse complement, so Len is always even.
// A Library is never modified after NewLibrary returns.
type Library struct {
	items  []Monomer
	byName map[string]int
	maxLen int
}

// NewLibrary builds the working library from input records.
func NewLibrary(recs []fasta.Record) (*Library, error) {
	if len(recs) == 0 {
		return nil, config.Errorf("monomer library is empty")
	}
	lib := &Library{
		items:  make([]Monomer, 0, 2*len(recs)),
		byName: make(map[string]int, 2*len(recs)),
	}
	for _, r := range recs {
		if len(r.Seq) == 0 {
			return nil, config.Errorf("monomer %q has an empty sequence", r.ID)
		}
		seq := []byte(strings.ToUpper(string(r.Seq)))
		if err := lib.add(Monomer{Name: r.ID, Seq: seq}); err != nil {
			return nil, err
		}
		if err := lib.add(Monomer{Name: r.ID + RCSuffix, Seq: RevComp(seq)}); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func (l *Library) add(m Monomer) error {
	if _, dup := l.byName[m.Name]; dup {
		return config.Errorf("duplicate monomer name %q", m.Name)
	}
	l.byName[m.Name] = len(l.items)
	l.items = append(l.items, m)
	if len(m.Seq) > l.maxLen {
		l.maxLen = len(m.Seq)
	}
	return nil
}

// Load reads a monomer FASTA and builds the library.
func Load(path string) (*Library, error) {
	recs, err := fasta.ReadAll(path)
	if err != nil {
		return nil, config.Errorf("monomers %s: %v", path, err)
	}
	return NewLibrary(recs)
}

// Len is the number of monomers including reverse complements.
func (l *Library) Len() int { return len(l.items) }

// At returns the i-th monomer. Callers must not modify Seq.
func (l *Library) At(i int) Monomer { return l.items[i] }

// Index looks a monomer up by name.
func (l *Library) Index(name string) (int, bool) {
	i, ok := l.byName[name]
	return i, ok
}

// MaxLen is the length of the longest monomer.
func (l *Library) MaxLen() int { return l.maxLen }

// IsReverse reports whether name denotes a synthesized reverse complement.
func IsReverse(name string) bool { return strings.HasSuffix(name, RCSuffix) }
