package mpd

import "strconv"

// The command catalog proper (every MPD command's argument formatting and
// response schema) is out of scope for this package: it is data, not
// logic. The handful of commands below exist only to exercise the typed
// converters end to end; application code is expected to add the rest
// following the same Command/CommandList pattern.

// Status runs the `status` command and converts its reply.
func (c *Client) Status() (*Status, error) {
	return Command(c, NewRawCommand("status"), statusFromFrame)
}

// Stats runs the `stats` command and converts its reply.
func (c *Client) Stats() (*Stats, error) {
	return Command(c, NewRawCommand("stats"), statsFromFrame)
}

// AlbumArt runs the `albumart` command for uri at the given byte offset and
// converts its reply. Returns nil when the server has no art for uri.
func (c *Client) AlbumArt(uri string, offset uint64) (*AlbumArt, error) {
	cmd := NewRawCommand("albumart", uri, strconv.FormatUint(offset, 10))
	return Command(c, cmd, albumArtFromFrame)
}

// CurrentSong runs the `currentsong` command and converts its reply into
// the queue entry currently playing, if any.
func (c *Client) CurrentSong() ([]*SongInQueue, error) {
	return Command(c, NewRawCommand("currentsong"), songsInQueueFromFrame)
}

// Queue runs the `playlistinfo` command, returning every song in the
// current play queue in queue order.
func (c *Client) Queue() ([]*SongInQueue, error) {
	return Command(c, NewRawCommand("playlistinfo"), songsInQueueFromFrame)
}

// ListPlaylists runs the `listplaylists` command, returning every stored
// playlist known to the server.
func (c *Client) ListPlaylists() ([]*Playlist, error) {
	return Command(c, NewRawCommand("listplaylists"), playlistsFromFrame)
}
