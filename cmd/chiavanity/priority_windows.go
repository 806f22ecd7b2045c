//go:build windows

package main

import (
	"golang.org/x/sys/windows"
)

// raisePriority moves the process to above-normal priority so the search
// keeps its share of CPU next to interactive programs. HIGH_PRIORITY_CLASS
// can starve the desktop on machines where every core is a worker.
func raisePriority() {
	_ = windows.SetPriorityClass(windows.CurrentProcess(), windows.ABOVE_NORMAL_PRIORITY_CLASS)
}
