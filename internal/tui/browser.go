package tui

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

var openURL = openInBrowser

type openedMsg struct {
	copied bool
	err    error
}

// openInBrowser hands url to the platform's default handler without waiting
// for it to exit.
func openInBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}

// openLinkCmd opens link in the browser and falls back to the clipboard.
func openLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(link); err == nil {
			return openedMsg{}
		}
		if err := writeClipboard(link); err != nil {
			return openedMsg{err: fmt.Errorf("could not open or copy link: %w", err)}
		}
		return openedMsg{copied: true}
	}
}
