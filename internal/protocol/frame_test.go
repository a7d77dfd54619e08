package protocol

import (
	"bytes"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		mnemonic string
		param    string
		want     string
	}{
		{"VOL", "-450", "!VOL(-450)\r"},
		{"SRC", "2", "!SRC(2)\r"},
		{"VERB", "1", "!VERB(1)\r"},
		{"MUTEON", "", "!MUTEON\r"},
		{"POWERONMAIN", "", "!POWERONMAIN\r"},
	}
	for _, tt := range tests {
		got := Command(tt.mnemonic, tt.param)
		if !bytes.Equal(got, []byte(tt.want)) {
			t.Errorf("Command(%q, %q) = %q, want %q", tt.mnemonic, tt.param, got, tt.want)
		}
	}
}

func TestQueryAndSteps(t *testing.T) {
	if got := Query("VOL"); string(got) != "!VOL?\r" {
		t.Errorf("Query(VOL) = %q", got)
	}
	if got := StepUp("VOL"); string(got) != "!VOL+\r" {
		t.Errorf("StepUp(VOL) = %q", got)
	}
	if got := StepDown("ZVOL"); string(got) != "!ZVOL-\r" {
		t.Errorf("StepDown(ZVOL) = %q", got)
	}
}
