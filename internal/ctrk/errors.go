package ctrk

import "errors"

// The decoder's only non-local failure conditions. Every other malformed
// input (bad NMEA, unknown CAN IDs, truncated records mid-stream) is
// tolerated silently per the error-handling design: best-effort decoding
// with hard-fail only at these three structural boundaries.
var (
	// ErrBadMagic is returned when the input does not begin with "HEAD".
	ErrBadMagic = errors.New("ctrk: bad magic")

	// ErrUnexpectedEOF is returned when fewer bytes remain than a read
	// requires. It is only ever raised during the magic check; once the
	// header and record stream are reached, truncation instead stops
	// parsing cleanly and returns whatever samples were emitted.
	ErrUnexpectedEOF = errors.New("ctrk: unexpected end of input")

	// ErrMalformedHeader is returned when the header entry array is
	// structurally invalid (e.g. a zero or negative total_size before the
	// terminator entry is reached).
	ErrMalformedHeader = errors.New("ctrk: malformed header")
)
