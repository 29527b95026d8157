package ctrk

import "math"

// Calibration is a set of pure, stateless functions mapping raw on-wire
// channel values to engineering units (§4.10). All constants are fixed by
// the reference hardware. Formatting to fixed decimals must use
// round-half-to-even (banker's rounding) because downstream CSV comparisons
// are performed to the printed digit; math.RoundToEven is the stdlib
// primitive for that and no ecosystem library in this corpus (including
// gonum.org/v1/gonum/floats) offers a banker's-rounding formatter, so this
// is a justified stdlib-only component.

// CalibrateRPM converts the raw engine-speed channel to RPM.
func CalibrateRPM(raw uint16) float64 {
	return float64(raw) / 2.56
}

// CalibrateThrottle converts a raw throttle channel (rider grip or
// butterfly) to a percentage.
func CalibrateThrottle(raw uint16) float64 {
	return ((float64(raw) / 8.192) * 100) / 84.96
}

// CalibrateTemperature converts a raw single-byte temperature channel
// (coolant or intake) to degrees Celsius.
func CalibrateTemperature(raw uint8) float64 {
	return float64(raw)/1.6 - 30
}

// CalibrateWheelSpeed converts a raw wheel-speed channel to km/h.
func CalibrateWheelSpeed(raw uint16) float64 {
	return (float64(raw) / 64) * 3.6
}

// CalibrateFuel converts the cumulative raw fuel counter to a per-lap
// delta in cc, given the per-lap baseline captured at the first 0x023E
// frame seen within the lap.
func CalibrateFuel(raw, lapBaseline uint16) float64 {
	return (float64(raw) - float64(lapBaseline)) / 100
}

// CalibrateLean converts a raw lean-angle channel (lean or lean_signed) to
// degrees.
func CalibrateLean(raw uint16) float64 {
	return float64(raw)/100 - 90
}

// CalibratePitch converts the raw pitch channel to degrees/s.
func CalibratePitch(raw uint16) float64 {
	return float64(raw)/100 - 300
}

// CalibrateAcceleration converts a raw accelerometer channel (longitudinal
// or lateral) to G.
func CalibrateAcceleration(raw uint16) float64 {
	return float64(raw)/1000 - 7
}

// CalibrateBrakePressure converts a raw brake-pressure channel to bar.
func CalibrateBrakePressure(raw uint16) float64 {
	return float64(raw) / 32
}

// CalibrateGPSSpeed converts GPS ground speed from knots to km/h.
func CalibrateGPSSpeed(knots float64) float64 {
	return knots * 1.852
}

// RoundFixed rounds v to places decimal digits using round-half-to-even,
// matching the reference implementation's CSV-formatting convention.
func RoundFixed(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
