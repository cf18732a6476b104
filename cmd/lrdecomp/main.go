package main

import (
	"lrdecomp/internal/appshell"
	"lrdecomp/internal/cli"
)

func main() { appshell.Main(cli.Execute) }
