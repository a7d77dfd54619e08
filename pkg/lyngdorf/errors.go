package lyngdorf

import (
	"errors"
	"fmt"

	"github.com/avcontrol/lyngdorf/internal/connection"
)

// Sentinel errors.
var (
	// ErrNotConnected indicates an operation that needs a live link.
	ErrNotConnected = connection.ErrNotConnected

	// ErrAlreadyConnected indicates Connect was called on a live link.
	ErrAlreadyConnected = connection.ErrAlreadyConnected

	// ErrKeepAliveTimeout indicates the device stopped answering pings and
	// the link was closed.
	ErrKeepAliveTimeout = errors.New("keep-alive timed out")
)

// RangeError is returned by a setter whose value lies outside what the
// device accepts.
type RangeError struct {
	Control  string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %.1f dB out of range [%.1f, %.1f]", e.Control, e.Value, e.Min, e.Max)
}

// IsRangeError reports whether err is a RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// InvalidValueError is returned when selecting a source, audio mode,
// RoomPerfect position or voicing by a name the device has not announced.
type InvalidValueError struct {
	Kind string
	Name string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%q is not a known %s and cannot be chosen", e.Name, e.Kind)
}

// IsInvalidValueError reports whether err is an InvalidValueError.
func IsInvalidValueError(err error) bool {
	var ie *InvalidValueError
	return errors.As(err, &ie)
}

// UnsupportedError is returned for a control the connected model does not
// have, e.g. zone B on a TDAI amplifier.
type UnsupportedError struct {
	Control string
	Model   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported on %s", e.Control, e.Model)
}

// IsUnsupportedError reports whether err is an UnsupportedError.
func IsUnsupportedError(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}
