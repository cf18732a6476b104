package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"lrdecomp/internal/version"
)

// GenDocs writes the Markdown reference and the man page of the command
// into dir.
func GenDocs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	cmd := NewCommand(nil)
	cmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(cmd, dir); err != nil {
		return fmt.Errorf("markdown docs: %w", err)
	}
	header := &doc.GenManHeader{
		Title:   "LRDECOMP",
		Section: "1",
		Source:  "lrdecomp " + version.Version,
	}
	if err := doc.GenManTree(cmd, header, dir); err != nil {
		return fmt.Errorf("man page: %w", err)
	}
	return nil
}
