package mpd

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func TestReadGreeting(t *testing.T) {
	c := NewCodec(strings.NewReader("OK MPD 0.21.11\n"))
	version, err := c.ReadGreeting()
	if err != nil {
		t.Fatalf("ReadGreeting: %v", err)
	}
	if version != "0.21.11" {
		t.Fatalf("version = %q, want 0.21.11", version)
	}
}

func TestReadGreetingRejectsBadPrefix(t *testing.T) {
	c := NewCodec(strings.NewReader("HELLO\n"))
	if _, err := c.ReadGreeting(); err == nil {
		t.Fatal("expected an error for a non-MPD greeting")
	}
}

func TestReadResponseSingleFrame(t *testing.T) {
	c := NewCodec(strings.NewReader("foo: bar\nOK\n"))
	resp, err := c.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	frame, err := resp.SingleFrame()
	if err != nil {
		t.Fatalf("SingleFrame: %v", err)
	}
	if v, ok := frame.Get("foo"); !ok || v != "bar" {
		t.Fatalf("foo = %q, %v", v, ok)
	}
}

func TestReadResponseCommandListMarkers(t *testing.T) {
	c := NewCodec(strings.NewReader("foo: asdf\nlist_OK\nbaz: qux\nlist_OK\nOK\n"))
	resp, err := c.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if len(resp.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(resp.Frames))
	}
	if v, _ := resp.Frames[0].Get("foo"); v != "asdf" {
		t.Fatalf("frame0.foo = %q", v)
	}
	if v, _ := resp.Frames[1].Get("baz"); v != "qux" {
		t.Fatalf("frame1.baz = %q", v)
	}
}

func TestReadResponseErrorPreservesPrefix(t *testing.T) {
	c := NewCodec(strings.NewReader("foo: asdf\nlist_OK\nACK [2@1] {bar} bad\n"))
	resp, err := c.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if resp.Err == nil {
		t.Fatal("expected an ACK error")
	}
	if resp.Err.Code != 2 || resp.Err.Index != 1 || resp.Err.Command != "bar" || resp.Err.Message != "bad" {
		t.Fatalf("ack = %+v", resp.Err)
	}
	if len(resp.Frames) != 1 {
		t.Fatalf("expected the one successful frame to be preserved, got %d", len(resp.Frames))
	}
}

func TestReadResponseAckWithEmptyMessage(t *testing.T) {
	c := NewCodec(strings.NewReader("ACK [50@0] {play} \n"))
	resp, err := c.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if resp.Err.Message != "" {
		t.Fatalf("message = %q, want empty", resp.Err.Message)
	}
}

func TestReadResponseBinaryPayload(t *testing.T) {
	input := "size: 5\nbinary: 4\nabcd\nOK\n"
	c := NewCodec(strings.NewReader(input))
	resp, err := c.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	frame, err := resp.SingleFrame()
	if err != nil {
		t.Fatalf("SingleFrame: %v", err)
	}
	data, ok := frame.TakeBinary()
	if !ok {
		t.Fatal("expected a binary payload")
	}
	if string(data) != "abcd" {
		t.Fatalf("binary = %q, want abcd", data)
	}
}

func TestReadResponseSecondBinaryFieldIsInvalid(t *testing.T) {
	c := NewCodec(strings.NewReader("binary: 1\na\nbinary: 1\nb\nOK\n"))
	if _, err := c.ReadResponse(); err == nil {
		t.Fatal("expected InvalidMessage for a second binary field")
	}
}

func TestReadResponseMalformedFieldLine(t *testing.T) {
	c := NewCodec(strings.NewReader("not-a-field-line\nOK\n"))
	if _, err := c.ReadResponse(); err == nil {
		t.Fatal("expected InvalidMessage for a line without ': '")
	}
}

func TestReadResponseCleanEOFBetweenResponses(t *testing.T) {
	c := NewCodec(strings.NewReader(""))
	_, err := c.ReadResponse()
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReadResponsePartialReadAcrossChunks(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := NewCodec(client)
	done := make(chan *RawResponse, 1)
	errs := make(chan error, 1)
	go func() {
		resp, err := c.ReadResponse()
		if err != nil {
			errs <- err
			return
		}
		done <- resp
	}()

	if _, err := io.WriteString(server, "foo: bar\n"); err != nil {
		t.Fatalf("write first chunk: %v", err)
	}

	select {
	case <-done:
		t.Fatal("ReadResponse resolved before the frame was terminated")
	case <-errs:
		t.Fatal("ReadResponse errored before the frame was terminated")
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := io.WriteString(server, "baz: qux\nOK\n"); err != nil {
		t.Fatalf("write second chunk: %v", err)
	}

	select {
	case resp := <-done:
		frame, err := resp.SingleFrame()
		if err != nil {
			t.Fatalf("SingleFrame: %v", err)
		}
		if v, _ := frame.Get("foo"); v != "bar" {
			t.Fatalf("foo = %q", v)
		}
		if v, _ := frame.Get("baz"); v != "qux" {
			t.Fatalf("baz = %q", v)
		}
	case err := <-errs:
		t.Fatalf("ReadResponse: %v", err)
	case <-time.After(time.Second):
		t.Fatal("ReadResponse never resolved")
	}
}

func TestCodecBrokenAfterIoError(t *testing.T) {
	// EOF in the middle of a frame is an Io error (a clean EOF between
	// responses is not, and leaves the codec usable).
	c := NewCodec(strings.NewReader("foo: bar\n"))
	if _, err := c.ReadResponse(); err == nil {
		t.Fatal("expected an error for EOF in the middle of a frame")
	}
	if _, err := c.ReadResponse(); err == nil {
		t.Fatal("expected the codec to stay broken on a second call")
	}
}
