package plot

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// CommandRunner starts an external program. Tests replace Runner to avoid
// spawning a viewer.
type CommandRunner interface {
	Start(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

// Start launches name detached from ctx so the viewer outlives the caller.
func (execRunner) Start(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Runner is the package-level CommandRunner.
var Runner CommandRunner = execRunner{} //nolint:gochecknoglobals // Replaced in tests.

// viewerCommand returns the platform command that opens a file with its
// default application.
func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open hands path to the platform image viewer without waiting for it.
func Open(ctx context.Context, path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	if err := Runner.Start(ctx, name, args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, name, err)
	}
	return nil
}
