package crypto

import "runtime"

// Wipe zeroes each buffer in place once salt or key material is no longer
// needed.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
