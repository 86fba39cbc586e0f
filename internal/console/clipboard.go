package console

import (
	"fmt"
	"os/exec"
	"strings"
)

// Clipboard is the injected copy capability. Implementations report
// failure through the error; the controller turns it into a transient
// status message, never a generation failure.
type Clipboard interface {
	Copy(text string) error
}

type execClipboard struct {
	command string
	args    []string
}

func (c *execClipboard) Copy(text string) error {
	cmd := exec.Command(c.command, c.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", c.command, err)
	}
	return nil
}

type noClipboard struct{}

func (noClipboard) Copy(string) error {
	return fmt.Errorf("no clipboard utility available")
}

// DetectClipboard probes for a system clipboard utility once at startup.
// When none exists, copying reports failure instead of silently dropping
// the text.
func DetectClipboard() Clipboard {
	candidates := []struct {
		command string
		args    []string
	}{
		{"pbcopy", nil},
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c.command); err == nil {
			return &execClipboard{command: c.command, args: c.args}
		}
	}
	return noClipboard{}
}
