// Command lrdecomp-docs renders the lrdecomp reference (Markdown and man page).
package main

import (
	"fmt"
	"os"

	"lrdecomp/internal/cli"
)

func main() {
	dir := "./docs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := cli.GenDocs(dir); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(3)
	}
}
