//go:build windows

package cmd

import (
	"golang.org/x/sys/windows"
)

// openURL hands url to the default browser through the shell.
func openURL(url string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(url)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL)
}

// checkOpener reports whether openURL can work on this machine.
func checkOpener() (string, error) {
	return "ShellExecute", nil
}
