package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// execCommandWithTimeout executes a command with a timeout
func execCommandWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("command timed out after %v", timeout)
	}

	if err != nil {
		return output, fmt.Errorf("command failed: %v", err)
	}

	return output, nil
}

// ViewerCommand returns the program used to open a document for viewing.
// PDF_VIEWER overrides the platform default.
func ViewerCommand() (string, []string) {
	if viewer := os.Getenv("PDF_VIEWER"); viewer != "" {
		return viewer, nil
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// OpenInViewer launches the system viewer for path.
func OpenInViewer(path string) error {
	name, args := ViewerCommand()
	output, err := execCommandWithTimeout(ViewerTimeout, name, append(args, path)...)
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("%s: %v: %s", name, err, output)
		}
		return fmt.Errorf("%s: %v", name, err)
	}
	return nil
}
