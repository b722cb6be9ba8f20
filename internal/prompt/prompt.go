// Package prompt is the interactive terminal boundary: TTY detection, list
// selection, and token entry. The resolver and login command call through
// here; nothing else in the repo touches the terminal directly.
package prompt

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// IsInteractive reports whether standard input is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Choice is one selectable entry.
type Choice struct {
	Title string
	Value string
}

// Select presents a single-choice list and returns the chosen value.
func Select(title string, choices []Choice) (string, error) {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Title, c.Value)
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}

// Token prompts for an access token with echo disabled.
func Token(title string) (string, error) {
	var token string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&token).
		Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// OpenBrowser opens url in the default browser. Failures are returned but
// callers typically ignore them; the URL is always printed as well.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Start()
}
