package output

import (
	"fmt"
	"io"
	"strings"

	"lrdecomp/internal/merge"
)

// TSVHeader is the header row of the main decomposition table.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "read\tmonomer\tstart\tend\tidentity\tflag"

// AltTSVHeader is the header row of the alternates table.
const AltTSVHeader = "read\tmonomer\tstart\tend\tscore\tambiguous"

// AmbiguousMark tags alternate rows of calls that have more than one candidate.
const AmbiguousMark = "*"

// AltPath derives the alternates file name from the main output path.
func AltPath(out string) string {
	return strings.TrimSuffix(out, ".tsv") + "_alt.tsv"
}

// FormatCallTSV returns the main row for c (no trailing newline).
func FormatCallTSV(c merge.Call) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%.2f\t%s",
		c.ReadID, c.Monomer, c.Start, c.End, float64(c.Identity), c.Flag)
}

// FormatAltRowsTSV returns one row per alternate of c. Rows carry a sixth
// column only when the call is ambiguous.
func FormatAltRowsTSV(c merge.Call) []string {
	rows := make([]string, 0, len(c.Alts))
	for _, a := range c.Alts {
		row := fmt.Sprintf("%s\t%s\t%d\t%d\t%.2f", c.ReadID, a.Monomer, c.Start, c.End, float64(a.Score))
		if len(c.Alts) > 1 {
			row += "\t" + AmbiguousMark
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCalls writes the main rows of calls to w.
func WriteCalls(w io.Writer, calls []merge.Call) error {
	for _, c := range calls {
		if _, err := io.WriteString(w, FormatCallTSV(c)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteAlts writes the alternate rows of calls to w.
func WriteAlts(w io.Writer, calls []merge.Call) error {
	for _, c := range calls {
		for _, row := range FormatAltRowsTSV(c) {
			if _, err := io.WriteString(w, row+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
