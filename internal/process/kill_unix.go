//go:build !windows

// Package process stops browser process trees left behind by the Chrome renderer.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes Chrome's renderer and GPU helpers down with it.
func KillProcessGroup(pid int) {
	// Best effort: the launcher kills the leader on its own afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
