package ctrk

// gpsUnset is the sentinel latitude/longitude value meaning "no fix yet".
const gpsUnset = 9999.0

// Sample is one emitted, immutable telemetry record: a snapshot of the
// channel cache plus the most recent GPS fix and the currently-running lap,
// taken at one tick of the 100ms emission clock.
//
// All channel values are held as their on-wire raw integers; calibrate.go
// provides the pure mapping to engineering units. TimeMS is a millisecond
// epoch reconstructed per §4.3; callers that need calibrated values call
// the Calibrate* functions directly on the fields they need.
type Sample struct {
	Lap   int
	TimeMS int64

	Latitude  float64
	Longitude float64
	GPSSpeedKnots float64

	RPM  uint16
	Gear uint8

	ThrottleAPS uint16 // rider grip, 13-bit raw
	ThrottleTPS uint16 // butterfly, 13-bit raw

	CoolantTempRaw uint8
	IntakeTempRaw  uint8

	FrontWheelSpeedRaw uint16
	RearWheelSpeedRaw  uint16

	FuelCounterRaw uint16

	LeanRaw       uint16 // unsigned convention, centred at 9000
	LeanSignedRaw uint16 // same magnitude, sign of (raw-9000) preserved, re-added to 9000
	PitchRaw      uint16

	AccelLongitudinalRaw uint16
	AccelLateralRaw      uint16

	FrontBrakeRaw uint16
	RearBrakeRaw  uint16

	FrontABS bool
	RearABS  bool
	TCS      uint8
	SCS      uint8 // "slide"
	LIF      uint8 // "lift"
	Launch   uint8
}

// channelCache is the last-write-wins (zero-order hold) store backing every
// Sample raw field, plus the per-lap fuel baseline. Mutated exclusively by
// the CAN handlers (can.go) and the driver's GPS and lap handling
// (driver.go); read by snapshot when the driver emits a Sample on a tick.
// No locking: the driver is single-threaded.
type channelCache struct {
	latitude      float64
	longitude     float64
	gpsSpeedKnots float64

	rpm  uint16
	gear uint8

	throttleAPS uint16
	throttleTPS uint16

	coolantTempRaw uint8
	intakeTempRaw  uint8

	frontWheelSpeedRaw uint16
	rearWheelSpeedRaw  uint16

	fuelCounterRaw uint16
	fuelBaseline   uint16
	fuelBaselineSet bool

	leanRaw       uint16
	leanSignedRaw uint16
	pitchRaw      uint16

	accelLongitudinalRaw uint16
	accelLateralRaw      uint16

	frontBrakeRaw uint16
	rearBrakeRaw  uint16

	frontABS bool
	rearABS  bool
	tcs      uint8
	scs      uint8
	lif      uint8
	launch   uint8
}

func newChannelCache() *channelCache {
	return &channelCache{
		latitude:  gpsUnset,
		longitude: gpsUnset,
	}
}

// resetLapBaseline clears the per-lap fuel baseline so the next 0x023E
// frame re-establishes it (§4.5, §4.7).
func (c *channelCache) resetLapBaseline() {
	c.fuelBaselineSet = false
}

// snapshot materializes an immutable Sample from the current cache state,
// the supplied GPS triple, lap index and tick epoch.
func (c *channelCache) snapshot(lap int, timeMS int64, lat, lon, speedKnots float64) Sample {
	return Sample{
		Lap:           lap,
		TimeMS:        timeMS,
		Latitude:      lat,
		Longitude:     lon,
		GPSSpeedKnots: speedKnots,

		RPM:  c.rpm,
		Gear: c.gear,

		ThrottleAPS: c.throttleAPS,
		ThrottleTPS: c.throttleTPS,

		CoolantTempRaw: c.coolantTempRaw,
		IntakeTempRaw:  c.intakeTempRaw,

		FrontWheelSpeedRaw: c.frontWheelSpeedRaw,
		RearWheelSpeedRaw:  c.rearWheelSpeedRaw,

		FuelCounterRaw: c.fuelCounterRaw,

		LeanRaw:       c.leanRaw,
		LeanSignedRaw: c.leanSignedRaw,
		PitchRaw:      c.pitchRaw,

		AccelLongitudinalRaw: c.accelLongitudinalRaw,
		AccelLateralRaw:      c.accelLateralRaw,

		FrontBrakeRaw: c.frontBrakeRaw,
		RearBrakeRaw:  c.rearBrakeRaw,

		FrontABS: c.frontABS,
		RearABS:  c.rearABS,
		TCS:      c.tcs,
		SCS:      c.scs,
		LIF:      c.lif,
		Launch:   c.launch,
	}
}
