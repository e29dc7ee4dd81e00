package util

import "runtime"

// GetOptimalPoolSize returns the worker count used for CPU-bound parallel
// work (file analysis, usage scanning).
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32). The 2x factor keeps cores
// busy while goroutines block inside CGO parser calls; the cap bounds parser
// memory on high-core machines.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns the override when positive,
// otherwise GetOptimalPoolSize(). Used by tests and tuning flags.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
