// Package protocol implements the ASCII control protocol spoken by Lyngdorf
// processors and amplifiers on TCP port 84.
//
// # Wire format
//
// Every frame is a single line terminated by a bare carriage return (no
// newline):
//
//	!MNEMONIC(param)\r     set or status
//	!MNEMONIC?\r           query
//	!MNEMONIC+\r           relative step up
//	!MNEMONIC-\r           relative step down
//
// Status frames pushed by the device may carry a trailing quoted label
// after the closing parenthesis:
//
//	!SRC(0)"Apple TV"\r
//
// The protocol is push oriented. Devices in verbose mode echo every state
// change as a status frame, so there is no request/response correlation;
// the Decoder simply turns the inbound byte stream into frames and leaves
// interpretation to the caller.
package protocol
