package ctrk

// headerDataOffset is the fixed offset at which the key/value header entry
// array begins, per §4.2/§6.
const headerDataOffset = 0x34

// recLineRecType identifies the "Record-line" (finish line) header entry:
// four little-endian IEEE-754 doubles, P1 lat/lng then P2 lat/lng.
const recLineRecType = 1

// headerTerminatorRecType marks the end of the header entry array; its
// offset is the start of the record stream.
const headerTerminatorRecType = 0

// finishLine is the two-point segment (P1, P2) read from the header's
// Record-line entry. If absent or malformed, lap detection is disabled and
// every sample carries lap 1 (§3, §4.2).
type finishLine struct {
	enabled bool
	p1x, p1y float64
	p2x, p2y float64
}

// scanHeader validates the magic, then walks the length-prefixed key/value
// header entry array starting at headerDataOffset. It stops at the first
// entry whose rec_type is the terminator and returns the offset of the
// record stream that follows, along with any finish line found along the
// way.
//
// Per §6, ErrUnexpectedEOF is only ever raised for the magic check; a
// header array that runs off the end of the buffer before the terminator
// is reached is treated the same way a truncated record stream is (§4.9):
// parsing stops cleanly with whatever was found, and dataStart lands past
// the end of the buffer so the record driver immediately sees no records.
// Only a *present* entry with a structurally invalid total_size (too small
// to contain its own 4-byte prefix) is reported as ErrMalformedHeader.
func scanHeader(buf []byte) (dataStart int, fl finishLine, err error) {
	if len(buf) < 4 {
		return 0, finishLine{}, ErrUnexpectedEOF
	}
	if string(buf[0:4]) != "HEAD" {
		return 0, finishLine{}, ErrBadMagic
	}

	r := newReader(buf)
	r.seek(headerDataOffset)

	for {
		if r.remaining() < 4 {
			return len(buf), fl, nil
		}

		recType, _ := r.u16le()
		totalSize, _ := r.u16le()

		if recType == headerTerminatorRecType {
			// The record stream begins right after the terminator entry.
			return r.tell(), fl, nil
		}

		if totalSize < 4 {
			return 0, finishLine{}, ErrMalformedHeader
		}
		payloadLen := int(totalSize) - 4
		payload, err := r.bytes(payloadLen)
		if err != nil {
			// Header array runs past the end of the buffer: truncate
			// cleanly rather than fail.
			return len(buf), fl, nil
		}

		if recType == recLineRecType && len(payload) == 32 {
			pr := newReader(payload)
			p1lat, _ := pr.f64le()
			p1lng, _ := pr.f64le()
			p2lat, _ := pr.f64le()
			p2lng, _ := pr.f64le()
			fl = finishLine{
				enabled: true,
				p1x:     p1lat, p1y: p1lng,
				p2x: p2lat, p2y: p2lng,
			}
		}
		// All other key/values (and a malformed-length Record-line entry)
		// are skipped without interpretation, leaving lap detection
		// disabled if no valid finish line is ever found.
	}
}
