package main

import (
	"io"
	"os"
)

// Seams for tests.
var (
	stdout      io.Writer = os.Stdout
	stdinIsTTY  = func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) }
	stderrIsTTY = func() bool { return isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == "" }
)
