//go:build !windows

package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
)

func openerName() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// openURL hands url to the default browser.
func openURL(url string) error {
	return exec.Command(openerName(), url).Start()
}

// checkOpener reports whether openURL can work on this machine.
func checkOpener() (string, error) {
	path, err := exec.LookPath(openerName())
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH", openerName())
	}
	return path, nil
}
