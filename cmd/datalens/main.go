package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/datalens/internal/cli"
	"github.com/rshade/datalens/pkg/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitNoTTY = 2
)

func run() error {
	root := cli.NewRootCmd(version.String())
	return root.Execute()
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrNotInteractive):
		return exitNoTTY
	default:
		return exitError
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
