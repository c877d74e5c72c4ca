package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode describes how much terminal capability is available.
type OutputMode int

// Output modes, from least to most capable.
const (
	OutputModePlain OutputMode = iota
	OutputModeStyled
	OutputModeInteractive
)

const defaultTerminalWidth = 80

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isStdinTTY reports whether stdin is a terminal.
func isStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// DetectOutputMode picks the output mode for the current process. Plain
// output is forced by noColor, the NO_COLOR variable, TERM=dumb, or a
// non-terminal stdout.
func DetectOutputMode(noColor bool) OutputMode {
	return detectOutputMode(noColor, IsTTY(), isStdinTTY(), os.LookupEnv)
}

func detectOutputMode(noColor, stdoutTTY, stdinTTY bool, lookupEnv func(string) (string, bool)) OutputMode {
	if noColor || !stdoutTTY {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, ok := lookupEnv("TERM"); ok && v == "dumb" {
		return OutputModePlain
	}
	if !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or 80 when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
