package mpd

import "testing"

func TestRawCommandEncodeBareArgs(t *testing.T) {
	cmd := NewRawCommand("play", "3")
	list := RawCommandList{Commands: []RawCommand{cmd}}
	if got, want := list.Encode(), "play 3\n"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestRawCommandEncodeQuotesAndEscapes(t *testing.T) {
	cmd := NewRawCommand("find", "artist", `The "Band" & \friends`)
	list := RawCommandList{Commands: []RawCommand{cmd}}
	got := list.Encode()
	want := "find artist \"The \\\"Band\\\" & \\\\friends\"\n"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestRawCommandListSingleCommandHasNoWrapper(t *testing.T) {
	list := NewRawCommandList(NewRawCommand("status"))
	if got, want := list.Encode(), "status\n"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestRawCommandListWrapsMultipleCommands(t *testing.T) {
	list := NewRawCommandListOf([]RawCommand{
		NewRawCommand("foo"),
		NewRawCommand("bar"),
	})
	got := list.Encode()
	want := "command_list_ok_begin\nfoo\nbar\ncommand_list_end\n"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestRawCommandListWithoutMarkersUsesPlainWrapper(t *testing.T) {
	list := RawCommandList{Commands: []RawCommand{NewRawCommand("foo"), NewRawCommand("bar")}}
	got := list.Encode()
	want := "command_list_begin\nfoo\nbar\ncommand_list_end\n"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

// tokenize is a minimal MPD argument lexer used only to check the encoder's
// round-trip property: bare tokens are split on spaces, quoted tokens are
// unescaped.
func tokenize(t *testing.T, line string) []string {
	t.Helper()
	var tokens []string
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '"' {
			i++
			var b []byte
			for i < len(line) && line[i] != '"' {
				if line[i] == '\\' && i+1 < len(line) {
					i++
				}
				b = append(b, line[i])
				i++
			}
			i++ // closing quote
			tokens = append(tokens, string(b))
			continue
		}
		start := i
		for i < len(line) && line[i] != ' ' {
			i++
		}
		tokens = append(tokens, line[start:i])
	}
	return tokens
}

func TestEncodeRoundTrip(t *testing.T) {
	cases := [][]string{
		{"play"},
		{"play", "3"},
		{"find", "artist", "Foo Bar"},
		{"find", "artist", `quote"inside`},
		{"find", "artist", `back\slash`},
		{"sticker", "set", "song", "file.mp3", "rating", "5"},
	}

	for _, args := range cases {
		cmd := NewRawCommand(args[0], args[1:]...)
		list := RawCommandList{Commands: []RawCommand{cmd}}
		line := list.Encode()
		if line[len(line)-1] != '\n' {
			t.Fatalf("encoded line missing trailing newline: %q", line)
		}
		tokens := tokenize(t, line[:len(line)-1])
		if len(tokens) != len(args) {
			t.Fatalf("tokenize(%q) = %v, want %v", line, tokens, args)
		}
		for i, want := range args {
			if tokens[i] != want {
				t.Fatalf("token %d = %q, want %q (line %q)", i, tokens[i], want, line)
			}
		}
	}
}
