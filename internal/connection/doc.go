// Package connection manages the TCP link to a Lyngdorf device.
//
// A Manager owns the socket, a reader goroutine, and the protocol decoder.
// It delivers decoded frames to the caller through handler callbacks and
// reports unexpected link loss. It never reconnects on its own; when the
// link drops the owner is told once and decides what to do.
//
// Dialing goes through the Dialer interface so tests can substitute
// net.Pipe for a real device.
package connection
