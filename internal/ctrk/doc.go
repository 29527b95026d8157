// Package ctrk decodes CTRK motorcycle track-day telemetry logs into a
// uniform stream of calibrated per-sample records.
//
// The package is organized by pipeline stage, one file per concern:
//
//	reader.go      C1  bounds-checked cursor over an immutable byte buffer
//	header.go      C2  header scanner, finish-line extraction
//	timestamp.go   C3  10-byte on-disk time field reconstruction
//	nmea.go        C4  $GPRMC parsing and checksum validation
//	can.go         C5  eight CAN payload decoders
//	sample.go      C6  Sample type, last-write-wins channel cache and snapshot
//	finishline.go  C7  finish-line crossing detector / lap counter
//	clock.go       C8  100ms emission clock
//	driver.go      C9  outer record loop
//	calibrate.go   C10 raw-to-engineering-unit calibration
//	decoder.go     C11 public Decode entry point and error surface
//
// The decoder is a pure, synchronous function of its input buffer: no I/O,
// no goroutines, no ambient configuration. All mutable state lives in a
// driver value created per call to Decode and is discarded when it returns.
package ctrk
