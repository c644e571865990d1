//go:build !windows

package multiplexer

import "syscall"

// detachedSysProcAttr starts the zellij launch process in its own session
// so it survives Grove's own process tree, mirroring `setsid` the way
// spec.md's tmux path gets this for free from `new-session -d`.
func detachedSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
