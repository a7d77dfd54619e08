package protocol

import (
	"bytes"
	"fmt"
	"strings"
)

// maxLineLen bounds the receive buffer. No real frame comes close; a stream
// that exceeds it is garbage and the oversized line is dropped.
const maxLineLen = 4096

// FrameError describes a line that could not be decoded. The stream itself
// stays usable, decoding resumes at the next terminator.
type FrameError struct {
	Line   string
	Reason string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("bad frame %q: %s", e.Line, e.Reason)
}

// Decoder accumulates raw bytes from the socket and yields complete frames.
// It is not safe for concurrent use; the connection read loop owns it.
type Decoder struct {
	buf      bytes.Buffer
	overflow bool
}

// Feed appends p to the internal buffer and decodes every complete line in
// it. Malformed lines are reported as FrameErrors in the second return value
// and do not interrupt decoding of later lines. Partial trailing data stays
// buffered for the next call.
func (d *Decoder) Feed(p []byte) ([]Frame, []error) {
	d.buf.Write(p)

	var frames []Frame
	var errs []error
	for {
		raw := d.buf.Bytes()
		i := bytes.IndexByte(raw, Terminator)
		if i < 0 {
			if d.buf.Len() > maxLineLen {
				d.buf.Reset()
				d.overflow = true
				errs = append(errs, &FrameError{Reason: "line exceeds maximum length"})
			}
			return frames, errs
		}

		line := string(raw[:i])
		d.buf.Next(i + 1)

		if d.overflow {
			// Tail of the oversized line, already reported.
			d.overflow = false
			continue
		}

		// Some firmware revisions follow CR with LF.
		line = strings.TrimPrefix(line, "\n")
		if line == "" {
			continue
		}

		f, err := parseLine(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		frames = append(frames, f)
	}
}

// parseLine decodes one terminator-stripped line into a Frame.
func parseLine(line string) (Frame, error) {
	if line[0] != '!' {
		return Frame{}, &FrameError{Line: line, Reason: "missing '!' prefix"}
	}
	body := line[1:]
	if body == "" {
		return Frame{}, &FrameError{Line: line, Reason: "empty frame"}
	}

	open := strings.IndexByte(body, '(')
	if open < 0 {
		// Bare status like "!MUTEON". A trailing quote without a
		// parameter does not occur.
		if !validMnemonic(body) {
			return Frame{}, &FrameError{Line: line, Reason: "invalid mnemonic"}
		}
		return Frame{Mnemonic: body}, nil
	}

	mnemonic := body[:open]
	if !validMnemonic(mnemonic) {
		return Frame{}, &FrameError{Line: line, Reason: "invalid mnemonic"}
	}

	rest := body[open+1:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return Frame{}, &FrameError{Line: line, Reason: "unterminated parameter"}
	}

	f := Frame{Mnemonic: mnemonic, Param: rest[:end]}

	trailer := rest[end+1:]
	if trailer != "" {
		text, err := unquote(trailer)
		if err != nil {
			return Frame{}, &FrameError{Line: line, Reason: err.Error()}
		}
		f.Text = text
	}
	return f, nil
}

func validMnemonic(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// unquote strips the surrounding double quotes from a frame trailer. The
// devices never escape quotes inside labels, so everything between the
// outermost pair is taken verbatim.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("malformed trailer %q", s)
	}
	return s[1 : len(s)-1], nil
}
