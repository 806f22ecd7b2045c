//go:build !windows

package main

// raisePriority is a no-op here; use nice(1) to change the priority.
func raisePriority() {}
