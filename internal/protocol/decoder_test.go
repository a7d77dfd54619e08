package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeSingleFrame(t *testing.T) {
	tests := []struct {
		in   string
		want Frame
	}{
		{"!VOL(-450)\r", Frame{Mnemonic: "VOL", Param: "-450"}},
		{"!SRC(0)\"Apple TV\"\r", Frame{Mnemonic: "SRC", Param: "0", Text: "Apple TV"}},
		{"!MUTEON\r", Frame{Mnemonic: "MUTEON"}},
		{"!SRCCOUNT(8)\r", Frame{Mnemonic: "SRCCOUNT", Param: "8"}},
		{"!DEVICE(MP-60)\r", Frame{Mnemonic: "DEVICE", Param: "MP-60"}},
		{"!AUDTYPE(Dolby Atmos)\r", Frame{Mnemonic: "AUDTYPE", Param: "Dolby Atmos"}},
	}
	for _, tt := range tests {
		var d Decoder
		frames, errs := d.Feed([]byte(tt.in))
		if len(errs) != 0 {
			t.Fatalf("Feed(%q): unexpected errors %v", tt.in, errs)
		}
		if len(frames) != 1 {
			t.Fatalf("Feed(%q): got %d frames, want 1", tt.in, len(frames))
		}
		if frames[0] != tt.want {
			t.Errorf("Feed(%q) = %+v, want %+v", tt.in, frames[0], tt.want)
		}
	}
}

func TestDecodeAcrossChunks(t *testing.T) {
	// The same stream must decode identically no matter how the network
	// fragments it.
	stream := "!VOL(-450)\r!SRC(2)\"TV\"\r!MUTEON\r!ZVOL(-300)\r"
	want := []Frame{
		{Mnemonic: "VOL", Param: "-450"},
		{Mnemonic: "SRC", Param: "2", Text: "TV"},
		{Mnemonic: "MUTEON"},
		{Mnemonic: "ZVOL", Param: "-300"},
	}

	for chunk := 1; chunk <= len(stream); chunk++ {
		var d Decoder
		var got []Frame
		for i := 0; i < len(stream); i += chunk {
			end := i + chunk
			if end > len(stream) {
				end = len(stream)
			}
			frames, errs := d.Feed([]byte(stream[i:end]))
			if len(errs) != 0 {
				t.Fatalf("chunk %d: unexpected errors %v", chunk, errs)
			}
			got = append(got, frames...)
		}
		if len(got) != len(want) {
			t.Fatalf("chunk %d: got %d frames, want %d", chunk, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("chunk %d: frame %d = %+v, want %+v", chunk, i, got[i], want[i])
			}
		}
	}
}

func TestDecodeMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no prefix", "VOL(-450)\r"},
		{"empty", "!\r"},
		{"unterminated param", "!VOL(-450\r"},
		{"lowercase mnemonic", "!vol(1)\r"},
		{"bad trailer", "!SRC(0)Apple TV\r"},
	}
	for _, tt := range tests {
		var d Decoder
		frames, errs := d.Feed([]byte(tt.in))
		if len(frames) != 0 {
			t.Errorf("%s: got frames %v, want none", tt.name, frames)
		}
		if len(errs) != 1 {
			t.Fatalf("%s: got %d errors, want 1", tt.name, len(errs))
		}
		var fe *FrameError
		if !errors.As(errs[0], &fe) {
			t.Errorf("%s: error type %T, want *FrameError", tt.name, errs[0])
		}
	}
}

func TestDecodeMalformedDoesNotPoisonStream(t *testing.T) {
	var d Decoder
	frames, errs := d.Feed([]byte("garbage\r!VOL(-100)\r"))
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if len(frames) != 1 || frames[0].Mnemonic != "VOL" {
		t.Fatalf("frames after bad line = %v, want VOL", frames)
	}
}

func TestDecodeCRLF(t *testing.T) {
	var d Decoder
	frames, errs := d.Feed([]byte("!VOL(-100)\r\n!MUTE(0)\r\n"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[1].Mnemonic != "MUTE" || frames[1].Param != "0" {
		t.Errorf("second frame = %+v", frames[1])
	}
}

func TestDecodeOversizedLine(t *testing.T) {
	var d Decoder
	junk := strings.Repeat("x", maxLineLen+10)
	frames, errs := d.Feed([]byte(junk))
	if len(frames) != 0 {
		t.Fatalf("got frames from junk: %v", frames)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}

	// The eventual terminator flushes the junk; the stream then recovers.
	frames, errs = d.Feed([]byte("\r!VOL(-100)\r"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors after recovery: %v", errs)
	}
	if len(frames) != 1 || frames[0].Mnemonic != "VOL" {
		t.Fatalf("frames after recovery = %v", frames)
	}
}
