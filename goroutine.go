package casement

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the current goroutine's id from its stack header.
// The header format ("goroutine N [...]") is stable across Go releases and
// this is the standard trick for asserting thread-affinity contracts.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
