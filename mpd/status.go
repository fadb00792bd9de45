package mpd

import (
	"strings"
	"time"
)

// Status is the response to the `status` command: the player's current
// playback state and queue position.
type Status struct {
	Volume         uint32
	State          PlayState
	Repeat         bool
	Random         bool
	Consume        bool
	Single         SingleMode
	PlaylistVersion uint32
	PlaylistLength  uint32
	CurrentSongPos  *SongPosition
	CurrentSongId   *SongId
	NextSongPos     *SongPosition
	NextSongId      *SongId
	Elapsed         *time.Duration
	Duration        *time.Duration
	Bitrate         *uint64
	Crossfade       time.Duration
	UpdateJob       *uint64
	Error           string
	Partition       string
}

// statusFromFrame implements the §4.4 Status converter, including the
// legacy `single` default and the `time:<elapsed>:<total>` fallback for
// servers predating protocol 0.20's `duration` field.
func statusFromFrame(f *Frame) (*Status, *TypedResponseError) {
	single := SingleModeDisabled
	if v, ok := optionalString(f, "single"); ok {
		var err *TypedResponseError
		single, err = parseSingleMode(v, "single")
		if err != nil {
			return nil, err
		}
	}

	duration, err := statusDuration(f)
	if err != nil {
		return nil, err
	}

	s := &Status{Single: single, Duration: duration}

	if v, ok, err := optionalUint32(f, "volume"); err != nil {
		return nil, err
	} else if ok {
		s.Volume = v
	}

	state, err := requiredString(f, "state")
	if err != nil {
		return nil, err
	}
	s.State, err = parsePlayState(state, "state")
	if err != nil {
		return nil, err
	}

	if s.Repeat, err = requiredBool(f, "repeat"); err != nil {
		return nil, err
	}
	if s.Random, err = requiredBool(f, "random"); err != nil {
		return nil, err
	}
	if s.Consume, err = requiredBool(f, "consume"); err != nil {
		return nil, err
	}

	if v, ok, err := optionalUint32(f, "playlistlength"); err != nil {
		return nil, err
	} else if ok {
		s.PlaylistLength = v
	}
	if v, ok, err := optionalUint32(f, "playlist"); err != nil {
		return nil, err
	} else if ok {
		s.PlaylistVersion = v
	}

	if s.CurrentSongPos, s.CurrentSongId, err = songIdentifier(f, "song", "songid"); err != nil {
		return nil, err
	}
	if s.NextSongPos, s.NextSongId, err = songIdentifier(f, "nextsong", "nextsongid"); err != nil {
		return nil, err
	}

	if elapsed, ok, err := optionalDuration(f, "elapsed"); err != nil {
		return nil, err
	} else if ok {
		s.Elapsed = &elapsed
	}

	if bitrate, ok, err := optionalUint64(f, "bitrate"); err != nil {
		return nil, err
	} else if ok {
		s.Bitrate = &bitrate
	}

	if xfade, ok, err := optionalDuration(f, "xfade"); err != nil {
		return nil, err
	} else if ok {
		s.Crossfade = xfade
	}

	if job, ok, err := optionalUint64(f, "update_job"); err != nil {
		return nil, err
	} else if ok {
		s.UpdateJob = &job
	}

	s.Error, _ = optionalString(f, "error")
	s.Partition, _ = optionalString(f, "partition")

	return s, nil
}

// statusDuration implements the modern/legacy dual path: prefer `duration`,
// otherwise fall back to the second half of `time:<elapsed>:<total>`.
func statusDuration(f *Frame) (*time.Duration, *TypedResponseError) {
	if v, ok := optionalString(f, "duration"); ok {
		d, err := parseDuration(v, "duration")
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	v, ok := optionalString(f, "time")
	if !ok {
		return nil, nil
	}

	_, total, found := strings.Cut(v, ":")
	if !found {
		return nil, &TypedResponseError{Field: "time", Kind: ErrInvalidValue, Value: v}
	}

	d, err := parseDuration(total, "time")
	if err != nil {
		return nil, err
	}
	return &d, nil
}
