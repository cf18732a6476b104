package engine

import (
	"testing"

	"lrdecomp/internal/align"
	"lrdecomp/internal/fasta"
	"lrdecomp/internal/kmer"
	"lrdecomp/internal/monomer"
)

func defaultConfig() Config {
	return Config{
		Mode:          ModeHash,
		KmerSize:      5,
		HashBase:      31,
		HashMod:       1_000_000_009,
		Window:        170,
		HashFloor:     50,
		ExactFloor:    70,
		IdentityDiff:  10,
		EditThreshold: align.DefaultThreshold,
		RefinePad:     10,
		RefineFloor:   70,
		MaxChunk:      5200,
	}
}

func loadLibrary(t *testing.T, path string) *monomer.Library {
	t.Helper()
	lib, err := monomer.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return lib
}

func seqOf(lib *monomer.Library, names ...string) []byte {
	var out []byte
	for _, n := range names {
		i, _ := lib.Index(n)
		out = append(out, lib.At(i).Seq...)
	}
	return out
}

type want struct {
	name       string
	start, end int
	identity   int
}

func checkIntervals(t *testing.T, got []Interval, ws []want) {
	t.Helper()
	if len(got) != len(ws) {
		t.Fatalf("got %d intervals, want %d: %+v", len(got), len(ws), got)
	}
	for i, w := range ws {
		g := got[i]
		if g.Monomer != w.name || g.Start != w.start || g.End != w.end || g.Identity != w.identity {
			t.Errorf("interval %d = {%s %d-%d %d}, want %+v", i, g.Monomer, g.Start, g.End, g.Identity, w)
		}
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	e := New(lib, defaultConfig())
	read := seqOf(lib, "M1", "M2", "M3")

	got := e.Decompose("r", 40, read)
	checkIntervals(t, got, []want{
		{"M1", 0, 170, 100},
		{"M2", 171, 341, 100},
		{"M3", 342, 512, 100},
	})
	for _, iv := range got {
		if iv.ReadID != "r" || iv.ChunkOffset != 40 {
			t.Fatalf("chunk identity not stamped: %+v", iv)
		}
	}
}

func TestSegmentTentativeCalls(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	e := New(lib, defaultConfig())
	read := seqOf(lib, "M1", "M2", "M3")

	st, ivs := e.Segment(read)
	checkIntervals(t, ivs, []want{
		{"M1", 0, 170, 167},
		{"M2", 171, 341, 167},
		{"M3", 342, 512, 167},
	})
	if len(ivs[0].Alts) == 0 || ivs[0].Alts[0].Monomer != "M1" || ivs[0].Alts[0].Score != 167 {
		t.Fatalf("winner must lead its alternates: %+v", ivs[0].Alts)
	}
	if got := st.Score[len(read)-1]; got != 3*167 {
		t.Fatalf("final score = %d, want %d", got, 3*167)
	}
}

func TestScoreNonDecreasing(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	noise, err := fasta.ReadAll("../../testdata/noise.fa")
	if err != nil {
		t.Fatal(err)
	}
	reads := [][]byte{
		seqOf(lib, "M1", "M2", "M3"),
		seqOf(lib, "M3'", "M1", "M1"),
		noise[0].Seq,
	}
	for _, mode := range []string{ModeHash, ModeExact} {
		cfg := defaultConfig()
		cfg.Mode = mode
		e := New(lib, cfg)
		for ri, read := range reads {
			if mode == ModeExact && len(read) > 600 {
				read = read[:600]
			}
			st, _ := e.Segment(read)
			for i := 1; i < len(st.Score); i++ {
				if st.Score[i] < st.Score[i-1] {
					t.Fatalf("%s read %d: dp[%d]=%d < dp[%d]=%d", mode, ri, i, st.Score[i], i-1, st.Score[i-1])
				}
			}
		}
	}
}

func TestShortReadHasNoIntervals(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	e := New(lib, defaultConfig())
	read := seqOf(lib, "M1")[:100]
	if _, ivs := e.Segment(read); len(ivs) != 0 {
		t.Fatalf("read shorter than the window produced %+v", ivs)
	}
	if got := e.Decompose("r", 0, nil); got != nil {
		t.Fatalf("empty chunk produced %+v", got)
	}
}

func TestRandomReadYieldsNothing(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	noise, err := fasta.ReadAll("../../testdata/noise.fa")
	if err != nil {
		t.Fatal(err)
	}
	e := New(lib, defaultConfig())
	if got := e.Decompose("noise", 0, noise[0].Seq); len(got) != 0 {
		t.Fatalf("unrelated read produced calls: %+v", got)
	}
}

func TestReverseComplementRead(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	e := New(lib, defaultConfig())
	read := monomer.RevComp(seqOf(lib, "M1"))

	got := e.Decompose("r", 0, read)
	checkIntervals(t, got, []want{{"M1'", 0, 170, 100}})
}

func TestSingleSubstitution(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/short_monomers.fa")
	cfg := defaultConfig()
	cfg.Window = 59 // monomers are 60 bp
	cfg.HashFloor = 30
	e := New(lib, cfg)

	mid := seqOf(lib, "S2")
	if mid[30] != 'A' {
		mid[30] = 'A'
	} else {
		mid[30] = 'C'
	}
	read := append(append(seqOf(lib, "S1"), mid...), seqOf(lib, "S3")...)

	got := e.Decompose("r", 0, read)
	checkIntervals(t, got, []want{
		{"S1", 0, 59, 100},
		{"S2", 60, 119, 99},
		{"S3", 120, 179, 100},
	})
	if id := got[1].Identity; id >= 100 || id <= cfg.RefineFloor {
		t.Fatalf("substituted copy identity %d outside (%d,100)", id, cfg.RefineFloor)
	}
}

func TestExactModeMatchesHashOnCleanInput(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	cfg := defaultConfig()
	cfg.Mode = ModeExact
	e := New(lib, cfg)
	read := seqOf(lib, "M1", "M2", "M3")

	_, tentative := e.Segment(read)
	checkIntervals(t, tentative, []want{
		{"M1", 0, 170, 100},
		{"M2", 171, 341, 100},
		{"M3", 342, 512, 100},
	})
	checkIntervals(t, e.Decompose("r", 0, read), []want{
		{"M1", 0, 170, 100},
		{"M2", 171, 341, 100},
		{"M3", 342, 512, 100},
	})
}

func TestIndexSharedAcrossChunkLengths(t *testing.T) {
	lib := loadLibrary(t, "../../testdata/monomers.fa")
	e := New(lib, defaultConfig())
	read := seqOf(lib, "M1", "M2", "M3", "M1", "M2", "M3")
	var first *kmer.Index
	for n := 400; n <= len(read); n += 7 {
		e.Decompose("r", 0, read[:n])
		if first == nil {
			first = e.idx
		}
		if e.idx != first {
			t.Fatalf("index rebuilt for a %d bp chunk", n)
		}
	}
	if first == nil || first.Hasher.N != 5200 {
		t.Fatalf("index capacity = %v, want 5200", first)
	}
	if e.index(10) != first {
		t.Fatal("short chunks must share the index")
	}

	// a longer sequence grows the single index instead of adding another
	grown := e.index(6000)
	if grown == first || grown.Hasher.N != 6000 || e.index(5200) != grown {
		t.Fatal("index did not grow in place")
	}
}
