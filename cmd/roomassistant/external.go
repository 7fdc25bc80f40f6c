package main

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// systemClipboard shells out to the platform clipboard tool.
type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	default:
		candidates = [][]string{{"wl-copy"}, {"xclip", "-selection", "clipboard"}}
	}

	for _, candidate := range candidates {
		path, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		cmd := exec.Command(path, candidate[1:]...)
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	}
	return errors.New("no clipboard tool found (install wl-copy or xclip)")
}

// systemBrowser opens URLs with the platform opener.
type systemBrowser struct{}

func (systemBrowser) Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
