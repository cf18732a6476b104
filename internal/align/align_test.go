package align

import "testing"

func TestGlobal(t *testing.T) {
	a := New(DefaultThreshold)
	tests := []struct {
		p, t    string
		want    int
		matched bool
	}{
		{"ACGT", "ACGT", 100, true},
		{"ACGT", "ACGA", 75, true},
		{"ACGTACGT", "ACGTACG", 88, true},
		{"AAAA", "TTTT", -1, false},
		{"", "A", -1, false},
		{"A", "", -1, false},
	}
	for _, tt := range tests {
		got := a.Global([]byte(tt.p), []byte(tt.t))
		if got.Matched != tt.matched || got.Identity != tt.want {
			t.Errorf("Global(%q,%q) = %+v, want identity %d matched %v", tt.p, tt.t, got, tt.want, tt.matched)
		}
	}
}

func TestInfix(t *testing.T) {
	a := New(DefaultThreshold)
	tests := []struct {
		p, t    string
		want    int
		loc     Location
		matched bool
	}{
		{"ACGT", "TTACGTTT", 100, Location{2, 5}, true},
		{"ACGTACGT", "GGACGAACGTGG", 88, Location{2, 9}, true},
		{"ACGT", "ACGTACGT", 100, Location{0, 3}, true}, // first occurrence wins
		{"AAAC", "GAAC", 75, Location{0, 3}, true},      // leading mismatch, not a skipped base
		{"AAAA", "CCCCCCCC", -1, Location{-1, -1}, false},
	}
	for _, tt := range tests {
		got := a.Infix([]byte(tt.p), []byte(tt.t))
		if got.Matched != tt.matched || got.Identity != tt.want || got.Loc != tt.loc {
			t.Errorf("Infix(%q,%q) = %+v, want %d %+v", tt.p, tt.t, got, tt.want, tt.loc)
		}
	}
}

func TestSuffix(t *testing.T) {
	a := Aligner{} // zero value behaves like the default threshold
	tests := []struct {
		p, t    string
		want    int
		start   int
		matched bool
	}{
		{"ACGT", "GGGACGT", 100, 3, true},
		{"ACGT", "ACGTGG", 50, 0, true},
		{"ACGTACGT", "TTTTACGTTCGT", 88, 4, true},
		{"AAAA", "CCCC", -1, -1, false},
		{"ACGTACGTAC", "GTAC", -1, -1, false},
	}
	for _, tt := range tests {
		got := a.Suffix([]byte(tt.p), []byte(tt.t))
		if got.Matched != tt.matched || got.Identity != tt.want || got.Loc.Start != tt.start {
			t.Errorf("Suffix(%q,%q) = %+v, want %d start %d", tt.p, tt.t, got, tt.want, tt.start)
		}
		if got.Matched && got.Loc.End != len(tt.t)-1 {
			t.Errorf("Suffix(%q,%q) end = %d, want %d", tt.p, tt.t, got.Loc.End, len(tt.t)-1)
		}
	}
}

func TestNoNegativeIdentity(t *testing.T) {
	// a budget of 100% lets the distance reach |P|; identity must not go below 0
	a := New(1)
	got := a.Global([]byte("AC"), []byte("GTGT"))
	if got.Matched && got.Identity < 0 {
		t.Fatalf("negative identity leaked: %+v", got)
	}
}

func TestBudgetRoundsUp(t *testing.T) {
	a := New(DefaultThreshold)
	if got := a.budget(5); got != 3 {
		t.Fatalf("budget(5) = %d, want 3", got)
	}
	if got := a.budget(4); got != 2 {
		t.Fatalf("budget(4) = %d, want 2", got)
	}
}

func TestPrefixEnds(t *testing.T) {
	// "CAA" (one deletion) and "CAAG" (one substitution) tie at distance 1
	p, txt := []byte("CAAA"), []byte("CAAG")
	d, end, ok := prefixDistance(p, txt, 2)
	if !ok || d != 1 || end != 2 {
		t.Fatalf("prefixDistance = %d,%d,%v want 1,2,true", d, end, ok)
	}
	if end, ok := prefixLongest(p, txt, 1); !ok || end != 3 {
		t.Fatalf("prefixLongest = %d,%v want 3,true", end, ok)
	}
	if _, ok := prefixLongest([]byte("AAAA"), []byte("TTTT"), 1); ok {
		t.Fatal("prefixLongest matched beyond its budget")
	}
}
