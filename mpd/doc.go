// Package mpd implements the connection core of an MPD (Music Player
// Daemon) protocol client: a codec for MPD's line-oriented wire format, a
// multiplexer that interleaves the server's `idle` notification mode with
// caller-issued commands over one half-duplex transport, and a typed layer
// that converts raw response frames into domain values such as Status and
// Song.
//
// The package does not implement MPD's full command catalog or reconnect
// on connection loss; callers build both on top of Client, RawCommand, and
// the generic Command/CommandList helpers.
package mpd
