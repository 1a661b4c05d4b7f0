// Package clipboard copies rendered documents to the system clipboard.
package clipboard

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on %s: %s", runtime.GOOS, installHint())
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// installHint names the utility the platform clipboard binding shells out to
func installHint() string {
	switch runtime.GOOS {
	case "linux":
		return "install xclip, xsel or wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default"
	case "windows":
		return "clip should be available by default"
	default:
		return "no clipboard utility known for this platform"
	}
}
