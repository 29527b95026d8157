package ctrk

// CAN identifiers recognised by the bus payload dispatcher. A flat switch
// on the 16-bit identifier, rather than a map of callables, keeps the
// dispatch path inlineable.
const (
	canIDEngine      = 0x0209
	canIDThrottle    = 0x0215
	canIDTemps       = 0x023E
	canIDAccel       = 0x0250
	canIDLean        = 0x0258
	canIDBrakes      = 0x0260
	canIDWheelSpeeds = 0x0264
	canIDABS         = 0x0268
)

// gearErrorSentinel is the sensor's "no valid gear reading" value; a frame
// reporting it is rejected outright so the cached gear is left untouched.
const gearErrorSentinel = 7

// decodeCANFrame parses one bus record payload (§4.9 rec_type 1): a 16-bit
// CAN identifier, two reserved bytes, a length byte, then the data bytes.
// Unknown identifiers are a no-op; handlers tolerate a data slice shorter
// than the fields they read by leaving the missing trailing fields
// untouched (§4.5).
func decodeCANFrame(payload []byte, cache *channelCache) {
	if len(payload) < 5 {
		return
	}
	id := uint16(payload[0]) | uint16(payload[1])<<8 // little-endian
	// payload[2:4] reserved
	length := int(payload[4])
	data := payload[5:]
	if length < len(data) {
		data = data[:length]
	}

	switch id {
	case canIDEngine:
		decodeEngine(data, cache)
	case canIDThrottle:
		decodeThrottle(data, cache)
	case canIDTemps:
		decodeTemps(data, cache)
	case canIDAccel:
		decodeAccel(data, cache)
	case canIDLean:
		decodeLean(data, cache)
	case canIDBrakes:
		decodeBrakes(data, cache)
	case canIDWheelSpeeds:
		decodeWheelSpeeds(data, cache)
	case canIDABS:
		decodeABS(data, cache)
	}
}

func decodeEngine(d []byte, c *channelCache) {
	if len(d) >= 5 && d[4] == gearErrorSentinel {
		return // sensor error sentinel: reject the whole frame
	}
	if len(d) >= 2 {
		c.rpm = be16(d[0:2])
	}
	if len(d) >= 5 {
		c.gear = d[4]
	}
}

func decodeThrottle(d []byte, c *channelCache) {
	if len(d) >= 2 {
		c.throttleAPS = be16(d[0:2]) & 0x1FFF
	}
	if len(d) >= 4 {
		c.throttleTPS = be16(d[2:4]) & 0x1FFF
	}
	if len(d) >= 6 {
		flags := d[5]
		c.launch = (flags >> 6) & 1
		c.scs = (flags >> 5) & 1
		c.tcs = (flags >> 4) & 1
		c.lif = (flags >> 3) & 1
	}
}

func decodeTemps(d []byte, c *channelCache) {
	if len(d) >= 1 {
		c.coolantTempRaw = d[0]
	}
	if len(d) >= 2 {
		c.intakeTempRaw = d[1]
	}
	if len(d) >= 6 {
		fuel := be16(d[4:6])
		c.fuelCounterRaw = fuel
		if !c.fuelBaselineSet {
			c.fuelBaseline = fuel
			c.fuelBaselineSet = true
		}
	}
}

func decodeAccel(d []byte, c *channelCache) {
	if len(d) >= 2 {
		c.accelLongitudinalRaw = be16(d[0:2])
	}
	if len(d) >= 4 {
		c.accelLateralRaw = be16(d[2:4])
	}
}

// leanDeadband and leanRoundTo implement §4.5's lean-angle noise handling:
// a reading within 500 of the 9000 centre snaps to 9000, then the result is
// rounded to the nearest 100.
const (
	leanCentre   = 9000
	leanDeadband = 500
	leanRoundTo  = 100
)

// decodeLean extracts the lean-angle pair from a nibble-interleaved raw
// value. Two equivalent forms exist for deriving `sum`; this implementation
// takes the simpler one, a direct big-endian read (see DESIGN.md Open
// Question #1).
func decodeLean(d []byte, c *channelCache) {
	if len(d) >= 2 {
		sum := int(be16(d[0:2]))
		negative := sum-leanCentre < 0

		snapped := sum
		if abs(sum-leanCentre) <= leanDeadband {
			snapped = leanCentre
		}
		rounded := roundToNearest(snapped, leanRoundTo)

		c.leanRaw = uint16(rounded)

		magnitude := abs(rounded - leanCentre)
		if negative {
			c.leanSignedRaw = uint16(leanCentre - magnitude)
		} else {
			c.leanSignedRaw = uint16(leanCentre + magnitude)
		}
	}
	if len(d) >= 4 {
		c.pitchRaw = be16(d[2:4])
	}
}

func decodeBrakes(d []byte, c *channelCache) {
	if len(d) >= 2 {
		c.frontBrakeRaw = be16(d[0:2])
	}
	if len(d) >= 4 {
		c.rearBrakeRaw = be16(d[2:4])
	}
}

func decodeWheelSpeeds(d []byte, c *channelCache) {
	if len(d) >= 2 {
		c.frontWheelSpeedRaw = be16(d[0:2])
	}
	if len(d) >= 4 {
		c.rearWheelSpeedRaw = be16(d[2:4])
	}
}

func decodeABS(d []byte, c *channelCache) {
	if len(d) >= 1 {
		c.rearABS = d[0]&0x01 != 0
		c.frontABS = d[0]&0x02 != 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roundToNearest rounds v to the nearest multiple of step, rounding .5
// away from zero (for the non-negative lean values, that is round-half-up)
// as part of the deadband/quantization step (this is a raw-domain integer
// quantization step, distinct from the round-half-to-even rule calibrate.go
// applies when formatting engineering units).
func roundToNearest(v, step int) int {
	if v >= 0 {
		return ((v + step/2) / step) * step
	}
	return -((((-v) + step/2) / step) * step)
}
