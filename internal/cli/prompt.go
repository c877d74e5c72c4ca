package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rshade/datalens/internal/tui"
)

// ErrOutputExists is returned when a command would overwrite a file the user
// did not agree to replace.
var ErrOutputExists = errors.New("output file already exists")

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// ConfirmOverwrite asks whether path may be replaced.
// It returns immediately with Accepted=false in non-interactive (non-TTY) environments.
//
// The prompt defaults to "No" when the user presses Enter without input.
func ConfirmOverwrite(writer io.Writer, reader io.Reader, path string) PromptResult {
	if !tui.IsTTY() {
		return PromptResult{Accepted: false}
	}
	return confirm(writer, reader, fmt.Sprintf("? %s already exists. Overwrite it? [y/N] ", path))
}

// ConfirmOverwriteWithStdin is a convenience wrapper that uses os.Stdin as the reader.
func ConfirmOverwriteWithStdin(writer io.Writer, path string) PromptResult {
	return ConfirmOverwrite(writer, os.Stdin, path)
}

func confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	fmt.Fprint(writer, question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		// EOF or error - treat as cancelled
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
