package mpd

import "testing"

func TestSongsFromFrameSplitsOnFileAnchor(t *testing.T) {
	f := NewFrame([]Field{
		{Key: "file", Value: "a.mp3"},
		{Key: "Artist", Value: "Alice"},
		{Key: "duration", Value: "123.4"},
		{Key: "file", Value: "b.mp3"},
		{Key: "Artist", Value: "Bob"},
		{Key: "Artist", Value: "Bob Feat. Carol"},
	})

	songs, err := songsFromFrame(f)
	if err != nil {
		t.Fatalf("songsFromFrame: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("got %d songs, want 2", len(songs))
	}

	if songs[0].File != "a.mp3" {
		t.Fatalf("songs[0].File = %q", songs[0].File)
	}
	if songs[0].Duration == nil || *songs[0].Duration != 123.4 {
		t.Fatalf("songs[0].Duration = %v", songs[0].Duration)
	}
	if got := songs[0].Tags["Artist"]; len(got) != 1 || got[0] != "Alice" {
		t.Fatalf("songs[0].Tags[Artist] = %v", got)
	}

	if songs[1].File != "b.mp3" {
		t.Fatalf("songs[1].File = %q", songs[1].File)
	}
	if got := songs[1].Tags["Artist"]; len(got) != 2 || got[0] != "Bob" || got[1] != "Bob Feat. Carol" {
		t.Fatalf("songs[1].Tags[Artist] = %v", got)
	}
}

func TestSongsInQueueFromFrameParsesPositionAndId(t *testing.T) {
	f := NewFrame([]Field{
		{Key: "file", Value: "a.mp3"},
		{Key: "Pos", Value: "0"},
		{Key: "Id", Value: "12"},
		{Key: "file", Value: "b.mp3"},
		{Key: "Pos", Value: "1"},
		{Key: "Id", Value: "13"},
	})

	songs, err := songsInQueueFromFrame(f)
	if err != nil {
		t.Fatalf("songsInQueueFromFrame: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("got %d entries, want 2", len(songs))
	}
	if songs[0].Position != 0 || songs[0].Id != 12 {
		t.Fatalf("songs[0] = %+v", songs[0])
	}
	if songs[1].Position != 1 || songs[1].Id != 13 {
		t.Fatalf("songs[1] = %+v", songs[1])
	}
}

func TestPlaylistsFromFrame(t *testing.T) {
	f := NewFrame([]Field{
		{Key: "playlist", Value: "Favorites"},
		{Key: "Last-Modified", Value: "2024-01-01T00:00:00Z"},
		{Key: "playlist", Value: "Party"},
		{Key: "Last-Modified", Value: "2024-02-02T00:00:00Z"},
	})

	playlists, err := playlistsFromFrame(f)
	if err != nil {
		t.Fatalf("playlistsFromFrame: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("got %d playlists, want 2", len(playlists))
	}
	if playlists[0].Name != "Favorites" || playlists[1].Name != "Party" {
		t.Fatalf("playlists = %+v", playlists)
	}
}

func TestSplitRecordsEmptyFrame(t *testing.T) {
	f := NewFrame(nil)
	records := splitRecords(f, "file")
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}
