package mpd

// splitRecords scans a frame's remaining fields in insertion order and
// groups them into one sub-frame per logical record, starting a new record
// whenever the anchor key recurs. This is how list-style commands (song
// listings, playlists, sticker dumps) pack many records into one frame.
func splitRecords(f *Frame, anchor string) []*Frame {
	var records []*Frame
	var current []Field

	flush := func() {
		if current != nil {
			records = append(records, NewFrame(current))
		}
	}

	for _, field := range f.Fields() {
		if field.Key == anchor {
			flush()
			current = nil
		}
		current = append(current, field)
	}
	flush()

	return records
}

// Song is one entry from a song listing (`listallinfo`, `find`, `search`,
// and similar commands), keyed by MPD tag name. Multi-valued tags (e.g.
// repeated `Artist` lines) preserve all occurrences in order.
type Song struct {
	File     string
	Duration *float64
	Tags     map[string][]string
}

// songsFromFrame implements the §4.4 list converter for song listings,
// splitting the frame on the recurring `file:` anchor key.
func songsFromFrame(f *Frame) ([]*Song, *TypedResponseError) {
	records := splitRecords(f, "file")
	songs := make([]*Song, 0, len(records))

	for _, rec := range records {
		song := &Song{Tags: map[string][]string{}}
		for _, field := range rec.Fields() {
			switch field.Key {
			case "file":
				song.File = field.Value
			case "duration":
				d, err := parseDuration(field.Value, "duration")
				if err != nil {
					return nil, err
				}
				secs := d.Seconds()
				song.Duration = &secs
			default:
				song.Tags[field.Key] = append(song.Tags[field.Key], field.Value)
			}
		}
		songs = append(songs, song)
	}

	return songs, nil
}

// SongInQueue is a Song augmented with its position and id within the
// current play queue, as returned by `playlistinfo` and `playlistid`.
type SongInQueue struct {
	Song
	Position SongPosition
	Id       SongId
}

func songsInQueueFromFrame(f *Frame) ([]*SongInQueue, *TypedResponseError) {
	records := splitRecords(f, "file")
	songs := make([]*SongInQueue, 0, len(records))

	for _, rec := range records {
		entry := &SongInQueue{Song: Song{Tags: map[string][]string{}}}
		for _, field := range rec.Fields() {
			switch field.Key {
			case "file":
				entry.File = field.Value
			case "duration":
				d, err := parseDuration(field.Value, "duration")
				if err != nil {
					return nil, err
				}
				secs := d.Seconds()
				entry.Duration = &secs
			case "Pos":
				n, err := parseUint(field.Value, "Pos", 32)
				if err != nil {
					return nil, err
				}
				entry.Position = SongPosition(n)
			case "Id":
				n, err := parseUint(field.Value, "Id", 32)
				if err != nil {
					return nil, err
				}
				entry.Id = SongId(n)
			default:
				entry.Tags[field.Key] = append(entry.Tags[field.Key], field.Value)
			}
		}
		songs = append(songs, entry)
	}

	return songs, nil
}

// Playlist is one entry from `listplaylists`: a stored playlist's name and
// last-modified timestamp.
type Playlist struct {
	Name         string
	LastModified string
}

// playlistsFromFrame implements the list converter for `listplaylists`,
// splitting on the recurring `playlist:` anchor key.
func playlistsFromFrame(f *Frame) ([]*Playlist, *TypedResponseError) {
	records := splitRecords(f, "playlist")
	playlists := make([]*Playlist, 0, len(records))

	for _, rec := range records {
		p := &Playlist{}
		for _, field := range rec.Fields() {
			switch field.Key {
			case "playlist":
				p.Name = field.Value
			case "Last-Modified":
				p.LastModified = field.Value
			}
		}
		playlists = append(playlists, p)
	}

	return playlists, nil
}
