package crypto

import (
	"crypto/subtle"
	"runtime"
)

// Wipe overwrites secret key material in b with zeros.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
	runtime.KeepAlive(b)
}
