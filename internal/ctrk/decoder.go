// Package ctrk: public entry point (C11).
package ctrk

// Decoder configures and runs a single CTRK decode. The zero value is
// ready to use; SampleCap, if left at zero, defaults to the reference
// implementation's 72,000-sample ceiling (§4.8, §9).
type Decoder struct {
	// SampleCap bounds the total number of samples a single Decode call
	// will emit. Zero selects the default of 72,000.
	SampleCap int
}

// Decode parses a complete in-memory CTRK file and returns the ordered
// sequence of calibrated samples it produces, or one of the three named
// structural errors (ErrBadMagic, ErrUnexpectedEOF, ErrMalformedHeader).
//
// Decode is a pure function of its input: it performs no I/O, starts no
// goroutines, and does not retain any reference into buf past its return.
// A file that parses to zero samples (e.g. one with no GPS fix) is a valid,
// non-error outcome. Calling Decode concurrently from multiple goroutines
// on disjoint buffers is safe.
func Decode(buf []byte) ([]Sample, error) {
	var d Decoder
	return d.Decode(buf)
}

// Decode runs the decoder with the receiver's configuration. See the
// package-level Decode for the behavioural contract.
func (d Decoder) Decode(buf []byte) ([]Sample, error) {
	dataStart, fl, err := scanHeader(buf)
	if err != nil {
		return nil, err
	}

	drv := newDriver(fl, d.SampleCap)
	samples := drv.run(buf, dataStart)
	if samples == nil {
		samples = []Sample{}
	}
	return samples, nil
}
