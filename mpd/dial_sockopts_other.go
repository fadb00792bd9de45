//go:build !unix

package mpd

import "syscall"

// setKeepaliveSockopts is a no-op on platforms without TCP_USER_TIMEOUT
// (notably Windows); the dial proceeds with the OS default dead-peer
// detection.
func setKeepaliveSockopts(network, address string, c syscall.RawConn) error {
	return nil
}
