package mpd

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/crypto/ssh"
	"golang.org/x/net/proxy"
)

// DialOptions configures the convenience connect routines. The zero value is
// usable: a single dial attempt with a 5 second timeout and the default
// logger.
type DialOptions struct {
	Options

	// DialTimeout bounds a single connection attempt. Zero means 5 seconds.
	DialTimeout time.Duration

	// Retry, if non-nil, is used to retry the initial dial (not an
	// established session: the core never reconnects a running
	// connection). A nil Retry means try once.
	Retry *backoff.ExponentialBackOff

	// SSH, if non-nil, tunnels the connection through an SSH client's
	// channel rather than dialing the target directly.
	SSH *SSHTunnel

	// SOCKS5Proxy, if non-empty, is a "host:port" SOCKS5 proxy address the
	// connection is dialed through.
	SOCKS5Proxy string
}

// SSHTunnel describes how to reach an MPD server whose TCP port is only
// reachable from inside a remote host, by opening an SSH session to that
// host and forwarding the MPD connection over it.
type SSHTunnel struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyPath  string
}

func (t *SSHTunnel) dial(ctx context.Context, targetAddr string) (net.Conn, error) {
	auth := []ssh.AuthMethod{}
	if t.Password != "" {
		auth = append(auth, ssh.Password(t.Password))
	}
	if t.KeyPath != "" {
		key, err := os.ReadFile(t.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("mpd: read ssh key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("mpd: parse ssh key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("mpd: ssh tunnel configured without a password or key")
	}

	config := &ssh.ClientConfig{
		User:            t.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	}

	hostPort := t.Host
	if t.Port != 0 {
		hostPort = fmt.Sprintf("%s:%d", t.Host, t.Port)
	}
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", hostPort)
	if err != nil {
		return nil, fmt.Errorf("mpd: dial ssh host %s: %w", hostPort, err)
	}
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, config)
	if err != nil {
		return nil, fmt.Errorf("mpd: ssh handshake with %s: %w", hostPort, err)
	}
	client := ssh.NewClient(clientConn, chans, reqs)

	tunneled, err := client.Dial("tcp", targetAddr)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("mpd: ssh forward to %s: %w", targetAddr, err)
	}
	return tunneled, nil
}

// ConnectTCP dials addr ("host:port") and performs the MPD handshake,
// returning a Client and its StateChanges subscriber.
func ConnectTCP(ctx context.Context, addr string, opts DialOptions) (*Client, *StateChanges, error) {
	conn, err := dialTCP(ctx, addr, opts)
	if err != nil {
		return nil, nil, err
	}
	return connect(conn, opts.Options)
}

// ConnectUnix dials a Unix-domain socket at path and performs the MPD
// handshake.
func ConnectUnix(ctx context.Context, path string, opts DialOptions) (*Client, *StateChanges, error) {
	conn, err := dialWithRetry(ctx, opts, func(dialCtx context.Context) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(dialCtx, "unix", path)
	})
	if err != nil {
		return nil, nil, err
	}
	return connect(conn, opts.Options)
}

func dialTCP(ctx context.Context, addr string, opts DialOptions) (net.Conn, error) {
	if opts.SSH != nil {
		tunnel := opts.SSH
		return dialWithRetry(ctx, opts, func(dialCtx context.Context) (net.Conn, error) {
			return tunnel.dial(dialCtx, addr)
		})
	}
	if opts.SOCKS5Proxy != "" {
		return dialWithRetry(ctx, opts, func(dialCtx context.Context) (net.Conn, error) {
			dialer, err := proxy.SOCKS5("tcp", opts.SOCKS5Proxy, nil, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("mpd: configure socks5 proxy %s: %w", opts.SOCKS5Proxy, err)
			}
			type contextDialer interface {
				DialContext(ctx context.Context, network, address string) (net.Conn, error)
			}
			if cd, ok := dialer.(contextDialer); ok {
				return cd.DialContext(dialCtx, "tcp", addr)
			}
			return dialer.Dial("tcp", addr)
		})
	}
	return dialWithRetry(ctx, opts, func(dialCtx context.Context) (net.Conn, error) {
		d := net.Dialer{Control: setKeepaliveSockopts, Timeout: opts.dialTimeout()}
		return d.DialContext(dialCtx, "tcp", addr)
	})
}

func (o DialOptions) dialTimeout() time.Duration {
	if o.DialTimeout > 0 {
		return o.DialTimeout
	}
	return 5 * time.Second
}

// dialWithRetry runs dial once, or retries it on opts.Retry's schedule when
// one is configured. This only covers establishing the initial transport;
// once connect has handed a Client to the caller, the core never redials on
// its own.
func dialWithRetry(ctx context.Context, opts DialOptions, dial func(context.Context) (net.Conn, error)) (net.Conn, error) {
	if opts.Retry == nil {
		dialCtx, cancel := context.WithTimeout(ctx, opts.dialTimeout())
		defer cancel()
		return dial(dialCtx)
	}

	policy := opts.Retry
	policy.Reset()

	var conn net.Conn
	operation := func() error {
		dialCtx, cancel := context.WithTimeout(ctx, opts.dialTimeout())
		defer cancel()
		c, err := dial(dialCtx)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return conn, nil
}
