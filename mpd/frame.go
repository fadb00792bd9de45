package mpd

// Field is a single key/value pair as it appeared on the wire, in the order
// MPD sent it. The same key may repeat within a Frame (list-style commands
// emit one Field per record).
type Field struct {
	Key   string
	Value string
}

// Frame is an ordered multimap of Fields produced by the codec for a single
// command in a response. At most one binary payload may be attached, spliced
// in by the line scanner when it encounters a `binary:` field.
//
// Frame is not safe for concurrent use; it is handed to exactly one
// converter or caller.
type Frame struct {
	fields []Field
	binary []byte
	hasBin bool
}

// NewFrame builds a Frame from an ordered slice of fields. The slice is not
// copied defensively; callers should not reuse it afterwards.
func NewFrame(fields []Field) *Frame {
	return &Frame{fields: fields}
}

// Get removes and returns the first value associated with key, in insertion
// order. Subsequent calls with the same key return later occurrences, if
// any. Returns false if no (remaining) value exists.
func (f *Frame) Get(key string) (string, bool) {
	for i, field := range f.fields {
		if field.Key == key {
			v := field.Value
			f.fields = append(f.fields[:i], f.fields[i+1:]...)
			return v, true
		}
	}
	return "", false
}

// Peek returns every value currently stored under key, without consuming
// them, in insertion order.
func (f *Frame) Peek(key string) []string {
	var out []string
	for _, field := range f.fields {
		if field.Key == key {
			out = append(out, field.Value)
		}
	}
	return out
}

// Fields returns the remaining fields in insertion order, without consuming
// them. The returned slice must not be mutated.
func (f *Frame) Fields() []Field {
	return f.fields
}

// Len reports the number of remaining, unconsumed fields.
func (f *Frame) Len() int {
	return len(f.fields)
}

// SetBinary attaches a binary payload to the frame. Called by the codec at
// most once per frame; a second call is a programmer error in the codec and
// is reported there, not here.
func (f *Frame) SetBinary(b []byte) {
	f.binary = b
	f.hasBin = true
}

// TakeBinary removes and returns the frame's binary payload, if any.
func (f *Frame) TakeBinary() ([]byte, bool) {
	if !f.hasBin {
		return nil, false
	}
	b := f.binary
	f.binary = nil
	f.hasBin = false
	return b, true
}
