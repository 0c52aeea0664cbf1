//go:build windows

// Package process stops browser process trees left behind by the Chrome renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and every child with taskkill /T.
func KillProcessGroup(pid int) {
	// Best effort: the launcher kills the leader on its own afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an integer
}
