// Command mpdc is a small diagnostic client for exercising the mpd package
// against a real server: it connects, prints status and stats, and with
// -watch streams idle notifications until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kholthaus/mpd-client/internal/logging"
	"github.com/kholthaus/mpd-client/mpd"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Getenv))
}

func run(args []string, out io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("mpdc", flag.ContinueOnError)
	addr := fs.String("addr", "localhost:6600", "MPD server address (host:port)")
	discover := fs.Bool("discover", false, "browse mDNS for an MPD server instead of dialing -addr")
	watch := fs.Bool("watch", false, "after printing status, stream idle notifications until interrupted")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.NewFromEnv(getenv, out)

	target := *addr
	if *discover {
		found, err := mpd.Discover(3 * time.Second)
		if err != nil {
			logger.Error("mdns discovery failed", logging.Field{Key: "error", Value: err})
			return 1
		}
		if len(found) == 0 {
			logger.Error("no MPD servers found via mdns")
			return 1
		}
		a, ok := found[0].Addr()
		if !ok {
			logger.Error("discovered server had no usable address", logging.Field{Key: "instance", Value: found[0].Instance})
			return 1
		}
		target = a
		logger.Info("discovered MPD server", logging.Field{Key: "instance", Value: found[0].Instance}, logging.Field{Key: "addr", Value: target})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, changes, err := mpd.ConnectTCP(ctx, target, mpd.DialOptions{Options: mpd.Options{Logger: logger}})
	if err != nil {
		logger.Error("connect failed", logging.Field{Key: "addr", Value: target}, logging.Field{Key: "error", Value: err})
		return 1
	}
	defer client.Close()

	status, err := client.Status()
	if err != nil {
		logger.Error("status failed", logging.Field{Key: "error", Value: err})
		return 1
	}
	fmt.Fprintf(out, "state=%v volume=%d playlist_length=%d\n", status.State, status.Volume, status.PlaylistLength)

	stats, err := client.Stats()
	if err != nil {
		logger.Error("stats failed", logging.Field{Key: "error", Value: err})
		return 1
	}
	fmt.Fprintf(out, "songs=%d artists=%d albums=%d uptime=%s\n", stats.Songs, stats.Artists, stats.Albums, stats.Uptime)

	if !*watch {
		return 0
	}

	fmt.Fprintln(out, "watching for changes (ctrl-c to stop)...")
	go func() {
		<-ctx.Done()
		client.Close()
	}()
	for changes.Next() {
		if err := changes.Err(); err != nil {
			logger.Error("state change error", logging.Field{Key: "error", Value: err})
			continue
		}
		fmt.Fprintf(out, "changed: %s\n", changes.Subsystem())
	}
	return 0
}
