//go:build unix

package mpd

import (
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// setKeepaliveSockopts is a net.Dialer.Control callback that tightens dead
// connection detection below what SetKeepAlive alone offers: TCP_USER_TIMEOUT
// bounds how long unacknowledged data may sit on the wire before the kernel
// reports the socket as broken, which is the difference between the codec
// seeing an Io error promptly and the idle loop hanging against a server
// that vanished without a FIN (a pulled network cable, a frozen container).
func setKeepaliveSockopts(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_USER_TIMEOUT, int(keepaliveUserTimeout/time.Millisecond))
	})
	if err != nil {
		return err
	}
	return sockErr
}

const keepaliveUserTimeout = 15 * time.Second
