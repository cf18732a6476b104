package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lrdecomp/internal/config"
	"lrdecomp/internal/fasta"
	"lrdecomp/internal/output"
)

const monomersFA = "../../testdata/monomers.fa"

func monomerSeqs(t *testing.T) map[string]string {
	t.Helper()
	recs, err := fasta.ReadAll(monomersFA)
	if err != nil {
		t.Fatal(err)
	}
	m := make(map[string]string, len(recs))
	for _, r := range recs {
		m[r.ID] = string(r.Seq)
	}
	return m
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

func readLines(t *testing.T, fn string) []string {
	t.Helper()
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func baseOptions(dir, reads string) Options {
	return Options{
		ReadsPath:    reads,
		MonomersPath: monomersFA,
		OutPath:      filepath.Join(dir, "decomposition.tsv"),
		Threads:      2,
		Quiet:        true,
		Params:       config.Default(),
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	m := monomerSeqs(t)
	noise, err := fasta.ReadAll("../../testdata/noise.fa")
	if err != nil {
		t.Fatal(err)
	}
	reads := writeFile(t, dir, "reads.fa",
		">r1 sample\n"+m["M1"]+m["M2"]+m["M3"]+"\n>noise\n"+string(noise[0].Seq)+"\n")

	o := baseOptions(dir, reads)
	var stdout, stderr bytes.Buffer
	if code := Run(context.Background(), &stdout, &stderr, o); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}

	want := []string{
		"r1\tM1\t0\t170\t100.00\t+",
		"r1\tM2\t171\t341\t100.00\t+",
		"r1\tM3\t342\t512\t100.00\t+",
	}
	got := readLines(t, o.OutPath)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("main table:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	alt := readLines(t, output.AltPath(o.OutPath))
	if len(alt) != 3 || alt[0] != "r1\tM1\t0\t170\t167.00" {
		t.Fatalf("alt table: %q", alt)
	}
}

func TestRunAcrossChunks(t *testing.T) {
	dir := t.TempDir()
	m := monomerSeqs(t)
	unit := m["M1"] + m["M2"] + m["M3"]
	reads := writeFile(t, dir, "reads.fa", ">long\n"+strings.Repeat(unit, 4)+"\n")

	o := baseOptions(dir, reads)
	o.Threads = 4
	o.Header = true
	o.Params.ChunkSize = 600
	o.Params.ChunkOverlap = 200
	o.Params.BatchSize = 1

	st, err := Decompose(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, o)
	if err != nil {
		t.Fatal(err)
	}
	if st.Reads != 1 || st.Chunks != 4 || st.Calls != 12 {
		t.Fatalf("stats = %+v", st)
	}
	got := readLines(t, o.OutPath)
	if got[0] != output.TSVHeader {
		t.Fatalf("missing header: %q", got[0])
	}
	names := []string{"M1", "M2", "M3"}
	for i, line := range got[1:] {
		want := fmt.Sprintf("long\t%s\t%d\t%d\t100.00\t+", names[i%3], i*171, i*171+170)
		if line != want {
			t.Fatalf("row %d = %q, want %q", i, line, want)
		}
	}
}

func TestRunNoCalls(t *testing.T) {
	dir := t.TempDir()
	reads := writeFile(t, dir, "reads.fa", ">short\nACGTACGT\n")
	o := baseOptions(dir, reads)
	o.NoMatchExitCode = 1
	if code := Run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, o); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if lines := readLines(t, o.OutPath); len(lines) != 0 {
		t.Fatalf("unexpected rows %q", lines)
	}
}

func TestRunConfigErrors(t *testing.T) {
	dir := t.TempDir()
	reads := writeFile(t, dir, "reads.fa", ">r\nACGT\n")
	empty := writeFile(t, dir, "empty.fa", "")

	cases := []struct {
		name string
		mut  func(*Options)
	}{
		{"missing reads", func(o *Options) { o.ReadsPath = filepath.Join(dir, "none.fa") }},
		{"missing monomers", func(o *Options) { o.MonomersPath = filepath.Join(dir, "none.fa") }},
		{"empty library", func(o *Options) { o.MonomersPath = empty }},
		{"bad mode", func(o *Options) { o.Params.Mode = "fast" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := baseOptions(dir, reads)
			tc.mut(&o)
			var stderr bytes.Buffer
			if code := Run(context.Background(), &bytes.Buffer{}, &stderr, o); code != ExitConfig {
				t.Fatalf("exit %d, want %d (%s)", code, ExitConfig, stderr.String())
			}
			if !strings.HasPrefix(stderr.String(), "error:") {
				t.Fatalf("stderr = %q", stderr.String())
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	m := monomerSeqs(t)
	reads := writeFile(t, dir, "reads.fa", ">r\n"+m["M1"]+"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := Run(ctx, &bytes.Buffer{}, &bytes.Buffer{}, baseOptions(dir, reads)); code != ExitCancelled {
		t.Fatalf("exit %d, want %d", code, ExitCancelled)
	}
}

func TestRunStdoutAndLogging(t *testing.T) {
	dir := t.TempDir()
	m := monomerSeqs(t)
	reads := writeFile(t, dir, "reads.fa", ">r\n"+m["M2"]+m["M3"]+"\n")
	o := baseOptions(dir, reads)
	o.OutPath = "-"
	o.Quiet = false

	var stdout, stderr bytes.Buffer
	if code := Run(context.Background(), &stdout, &stderr, o); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "r\tM2\t0\t170\t100.00\t+\nr\tM3\t171\t341\t100.00\t+\n" {
		t.Fatalf("stdout = %q", got)
	}
	if !strings.Contains(stderr.String(), "INFO: loaded 3 monomers") ||
		!strings.Contains(stderr.String(), "INFO: decomposed 1 reads (1 chunks) into 2 monomer calls") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
