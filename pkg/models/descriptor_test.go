package models

import "testing"

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		model Model
		db    float64
		want  string
	}{
		{MP60, -22.5, "-450"},
		{MP60, 0, "0"},
		{MP60, 10, "200"},
		{MP60, -99.9, "-1998"},
		{MP40, -45.05, "-901"},
		{TDAI1120, -22.5, "-225"},
		{TDAI2170, -45.0, "-450"},
		{TDAI3400, 10, "100"},
	}
	for _, tt := range tests {
		got := tt.model.Descriptor().FormatVolume(tt.db)
		if got != tt.want {
			t.Errorf("%s FormatVolume(%v) = %q, want %q", tt.model, tt.db, got, tt.want)
		}
	}
}

func TestParseVolumeRoundTrip(t *testing.T) {
	for _, m := range All() {
		d := m.Descriptor()
		for _, db := range []float64{-99.9, -45.0, -22.5, -0.5, 0, 3.5, 10} {
			raw := d.FormatVolume(db)
			got, err := d.ParseVolume(raw)
			if err != nil {
				t.Fatalf("%s ParseVolume(%q): %v", m, raw, err)
			}
			if got != db {
				t.Errorf("%s volume round trip: %v -> %q -> %v", m, db, raw, got)
			}
		}
	}
}

func TestParseVolumeBadInput(t *testing.T) {
	d := MP60.Descriptor()
	for _, raw := range []string{"", "abc", "4.5", "--1"} {
		if _, err := d.ParseVolume(raw); err == nil {
			t.Errorf("ParseVolume(%q): expected error", raw)
		}
	}
}

func TestFormatTrim(t *testing.T) {
	tests := []struct {
		db   float64
		want string
	}{
		{1.0, "10"},
		{-1.5, "-15"},
		{0, "0"},
		{12, "120"},
	}
	d := MP60.Descriptor()
	for _, tt := range tests {
		if got := d.FormatTrim(tt.db); got != tt.want {
			t.Errorf("FormatTrim(%v) = %q, want %q", tt.db, got, tt.want)
		}
	}
}

func TestTrimRange(t *testing.T) {
	d := MP60.Descriptor()
	tests := []struct {
		p        Param
		min, max float64
	}{
		{ParamTrimBass, -12, 12},
		{ParamTrimTreble, -12, 12},
		{ParamTrimCentre, -10, 10},
		{ParamTrimLFE, -10, 10},
	}
	for _, tt := range tests {
		min, max := d.TrimRange(tt.p)
		if min != tt.min || max != tt.max {
			t.Errorf("TrimRange(%s) = (%v, %v), want (%v, %v)", tt.p, min, max, tt.min, tt.max)
		}
	}
}

func TestInputNameFallback(t *testing.T) {
	d := TDAI1120.Descriptor()
	if got := d.AudioInputName(7); got != "audio-7" {
		t.Errorf("AudioInputName(7) = %q, want audio-7", got)
	}
	mp := MP60.Descriptor()
	if got := mp.AudioInputName(1); got != "HDMI" {
		t.Errorf("AudioInputName(1) = %q, want HDMI", got)
	}
	if got := mp.VideoInputName(99); got != "video-99" {
		t.Errorf("VideoInputName(99) = %q, want video-99", got)
	}
	if got := mp.StreamTypeName(6); got != "Roon ready" {
		t.Errorf("StreamTypeName(6) = %q, want Roon ready", got)
	}
}
