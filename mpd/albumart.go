package mpd

// AlbumArt is the response to the `albumart` and `readpicture` commands.
type AlbumArt struct {
	// Size is the total size in bytes of the remote file, which may exceed
	// len(Data) when the command only returned one chunk.
	Size uint64
	// Mime is the picture's mime type, if the server reported one.
	Mime string
	Data []byte
}

// albumArtFromFrame returns nil when the frame carries no binary payload,
// matching commands that report "no album art" with an empty success
// frame rather than an error.
func albumArtFromFrame(f *Frame) (*AlbumArt, *TypedResponseError) {
	data, ok := f.TakeBinary()
	if !ok {
		return nil, nil
	}

	size, err := requiredUint64(f, "size")
	if err != nil {
		return nil, err
	}

	mime, _ := optionalString(f, "type")

	return &AlbumArt{Size: size, Mime: mime, Data: data}, nil
}
