package protocol

import (
	"fmt"
	"strings"
)

// Terminator ends every frame on the wire. The devices use a bare carriage
// return, never CRLF.
const Terminator = '\r'

// Frame is a single decoded status line from a device.
type Frame struct {
	Mnemonic string // upper-case command word, e.g. "VOL"
	Param    string // text between the parentheses, may be empty
	Text     string // trailing quoted label, e.g. the source name
}

// String returns a debug representation of the frame.
func (f Frame) String() string {
	if f.Text != "" {
		return fmt.Sprintf("Frame{%s(%s) %q}", f.Mnemonic, f.Param, f.Text)
	}
	return fmt.Sprintf("Frame{%s(%s)}", f.Mnemonic, f.Param)
}

// Command encodes a set command, with or without a parameter:
//
//	Command("VOL", "-450")  -> "!VOL(-450)\r"
//	Command("MUTEON", "")   -> "!MUTEON\r"
func Command(mnemonic, param string) []byte {
	var b strings.Builder
	b.Grow(len(mnemonic) + len(param) + 4)
	b.WriteByte('!')
	b.WriteString(mnemonic)
	if param != "" {
		b.WriteByte('(')
		b.WriteString(param)
		b.WriteByte(')')
	}
	b.WriteByte(Terminator)
	return []byte(b.String())
}

// Query encodes a state query: Query("VOL") -> "!VOL?\r".
func Query(mnemonic string) []byte {
	return []byte("!" + mnemonic + "?" + string(Terminator))
}

// StepUp encodes a relative increment: StepUp("VOL") -> "!VOL+\r".
func StepUp(mnemonic string) []byte {
	return []byte("!" + mnemonic + "+" + string(Terminator))
}

// StepDown encodes a relative decrement: StepDown("VOL") -> "!VOL-\r".
func StepDown(mnemonic string) []byte {
	return []byte("!" + mnemonic + "-" + string(Terminator))
}
