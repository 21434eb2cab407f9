package app

import (
	"syscall"

	"github.com/ipoluianov/jsonstore/internal/logger"
)

// TuneFDs raises the soft open-files limit to the hard limit.
func TuneFDs() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Error("[app]", "TuneFDs", "syscall.Getrlimit error:", err)
		return
	}
	if rLimit.Cur >= rLimit.Max {
		return
	}
	old := rLimit.Cur
	rLimit.Cur = rLimit.Max
	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Error("[app]", "TuneFDs", "syscall.Setrlimit error:", err)
		return
	}
	logger.Println("[app]", "TuneFDs", "open files limit", old, "->", rLimit.Cur)
}
