package mpd

import "time"

// Stats is the response to the `stats` command: server-wide database and
// uptime counters.
type Stats struct {
	Artists      uint64
	Albums       uint64
	Songs        uint64
	Uptime       time.Duration
	Playtime     time.Duration
	DbPlaytime   time.Duration
	DbLastUpdate uint64
}

func statsFromFrame(f *Frame) (*Stats, *TypedResponseError) {
	s := &Stats{}
	var err *TypedResponseError

	if s.Artists, err = requiredUint64(f, "artists"); err != nil {
		return nil, err
	}
	if s.Albums, err = requiredUint64(f, "albums"); err != nil {
		return nil, err
	}
	if s.Songs, err = requiredUint64(f, "songs"); err != nil {
		return nil, err
	}
	if s.Uptime, err = requiredDuration(f, "uptime"); err != nil {
		return nil, err
	}
	if s.Playtime, err = requiredDuration(f, "playtime"); err != nil {
		return nil, err
	}
	if s.DbPlaytime, err = requiredDuration(f, "db_playtime"); err != nil {
		return nil, err
	}
	if s.DbLastUpdate, err = requiredUint64(f, "db_update"); err != nil {
		return nil, err
	}

	return s, nil
}
