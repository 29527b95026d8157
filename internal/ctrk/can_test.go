package ctrk

import "testing"

func TestDecodeEngine(t *testing.T) {
	c := newChannelCache()
	data := append(beBytes16(100), 0x00, 0x00, 3) // rpm=100, gear=3 at byte 4
	decodeCANFrame(canPayload(canIDEngine, data), c)
	if c.rpm != 100 {
		t.Errorf("rpm = %d, want 100", c.rpm)
	}
	if c.gear != 3 {
		t.Errorf("gear = %d, want 3", c.gear)
	}
}

func TestDecodeEngineGearErrorSentinelRejectsFrame(t *testing.T) {
	c := newChannelCache()
	c.gear = 4 // prior cached value
	data := append(beBytes16(200), 0x00, 0x00, gearErrorSentinel)
	decodeCANFrame(canPayload(canIDEngine, data), c)
	if c.gear != 4 {
		t.Errorf("gear = %d, want prior cached value 4 (sentinel gear must be rejected)", c.gear)
	}
	// The whole frame is rejected, so the RPM carried in the same frame is
	// not applied either and the cache keeps its prior value.
	if c.rpm != 0 {
		t.Errorf("rpm = %d, want prior cached value 0 (frame must be rejected)", c.rpm)
	}
}

func TestDecodeThrottleMasksTo13Bits(t *testing.T) {
	c := newChannelCache()
	data := make([]byte, 6)
	copy(data[0:2], beBytes16(0xFFFF))
	copy(data[2:4], beBytes16(0xFFFF))
	data[5] = 1<<6 | 1<<5 | 1<<4 | 1<<3 // launch, scs, tcs, lif all set
	decodeCANFrame(canPayload(canIDThrottle, data), c)
	if c.throttleAPS != 0x1FFF {
		t.Errorf("throttleAPS = %#x, want 0x1FFF", c.throttleAPS)
	}
	if c.throttleTPS != 0x1FFF {
		t.Errorf("throttleTPS = %#x, want 0x1FFF", c.throttleTPS)
	}
	if c.launch != 1 || c.scs != 1 || c.tcs != 1 || c.lif != 1 {
		t.Errorf("flags = %+v, want all 1", []uint8{c.launch, c.scs, c.tcs, c.lif})
	}
}

func TestDecodeTempsAndFuelBaseline(t *testing.T) {
	c := newChannelCache()
	data := make([]byte, 6)
	data[0] = 120 // coolant
	data[1] = 80  // intake
	copy(data[4:6], beBytes16(5000))
	decodeCANFrame(canPayload(canIDTemps, data), c)
	if c.coolantTempRaw != 120 || c.intakeTempRaw != 80 {
		t.Errorf("temps = %d/%d, want 120/80", c.coolantTempRaw, c.intakeTempRaw)
	}
	if c.fuelCounterRaw != 5000 {
		t.Errorf("fuelCounterRaw = %d, want 5000", c.fuelCounterRaw)
	}
	if !c.fuelBaselineSet || c.fuelBaseline != 5000 {
		t.Errorf("fuel baseline not set on first frame of lap: %+v", c)
	}

	// A second frame within the same lap must not move the baseline.
	data2 := make([]byte, 6)
	copy(data2[4:6], beBytes16(5100))
	decodeCANFrame(canPayload(canIDTemps, data2), c)
	if c.fuelBaseline != 5000 {
		t.Errorf("fuel baseline moved on second frame: %d, want 5000", c.fuelBaseline)
	}
	if c.fuelCounterRaw != 5100 {
		t.Errorf("fuelCounterRaw = %d, want 5100", c.fuelCounterRaw)
	}
}

func TestDecodeAccel(t *testing.T) {
	c := newChannelCache()
	data := append(beBytes16(7000), beBytes16(8000)...)
	decodeCANFrame(canPayload(canIDAccel, data), c)
	if c.accelLongitudinalRaw != 7000 || c.accelLateralRaw != 8000 {
		t.Errorf("accel = %d/%d, want 7000/8000", c.accelLongitudinalRaw, c.accelLateralRaw)
	}
}

func TestDecodeLeanDeadband(t *testing.T) {
	c := newChannelCache()
	data := append(beBytes16(9200), beBytes16(30000)...) // within deadband of 9000
	decodeCANFrame(canPayload(canIDLean, data), c)
	if c.leanRaw != 9000 {
		t.Errorf("leanRaw = %d, want 9000 (snapped by deadband)", c.leanRaw)
	}
	if c.leanSignedRaw != 9000 {
		t.Errorf("leanSignedRaw = %d, want 9000", c.leanSignedRaw)
	}
	if c.pitchRaw != 30000 {
		t.Errorf("pitchRaw = %d, want 30000", c.pitchRaw)
	}
}

func TestDecodeLeanRoundingAndSign(t *testing.T) {
	c := newChannelCache()
	// 9000 - 750 = 8250: outside the 500 deadband, negative side.
	data := append(beBytes16(8250), beBytes16(0)...)
	decodeCANFrame(canPayload(canIDLean, data), c)
	// Rounds to nearest 100: 8250 -> 8300 (round-half-up in this raw
	// quantization step; see roundToNearest).
	wantMagnitude := abs(int(c.leanRaw) - leanCentre)
	gotSignedMagnitude := abs(int(c.leanSignedRaw) - leanCentre)
	if gotSignedMagnitude != wantMagnitude {
		t.Errorf("|leanSigned-9000| = %d, want %d", gotSignedMagnitude, wantMagnitude)
	}
	if c.leanSignedRaw >= leanCentre {
		t.Errorf("leanSignedRaw = %d, want below centre for negative raw", c.leanSignedRaw)
	}
}

func TestDecodeBrakes(t *testing.T) {
	c := newChannelCache()
	data := append(beBytes16(1000), beBytes16(2000)...)
	decodeCANFrame(canPayload(canIDBrakes, data), c)
	if c.frontBrakeRaw != 1000 || c.rearBrakeRaw != 2000 {
		t.Errorf("brakes = %d/%d, want 1000/2000", c.frontBrakeRaw, c.rearBrakeRaw)
	}
}

func TestDecodeWheelSpeeds(t *testing.T) {
	c := newChannelCache()
	data := append(beBytes16(3000), beBytes16(4000)...)
	decodeCANFrame(canPayload(canIDWheelSpeeds, data), c)
	if c.frontWheelSpeedRaw != 3000 || c.rearWheelSpeedRaw != 4000 {
		t.Errorf("wheel speeds = %d/%d, want 3000/4000", c.frontWheelSpeedRaw, c.rearWheelSpeedRaw)
	}
}

func TestDecodeABSBitOrder(t *testing.T) {
	c := newChannelCache()
	decodeCANFrame(canPayload(canIDABS, []byte{0x01}), c) // rear only
	if !c.rearABS || c.frontABS {
		t.Errorf("rear/front = %v/%v, want true/false", c.rearABS, c.frontABS)
	}
	c2 := newChannelCache()
	decodeCANFrame(canPayload(canIDABS, []byte{0x02}), c2) // front only
	if c2.rearABS || !c2.frontABS {
		t.Errorf("rear/front = %v/%v, want false/true", c2.rearABS, c2.frontABS)
	}
}

func TestDecodeCANUnknownIDNoOp(t *testing.T) {
	c := newChannelCache()
	decodeCANFrame(canPayload(0xDEAD, []byte{1, 2, 3, 4}), c)
	if *c != *newChannelCache() {
		t.Errorf("unknown CAN id mutated cache: %+v", c)
	}
}

func TestDecodeCANShortFrameLeavesTrailingFieldsUntouched(t *testing.T) {
	c := newChannelCache()
	c.gear = 4 // prior cached value must survive a short frame
	// Declare a 2-byte data section: rpm (the first field) is set, but the
	// gear byte at offset 4 is never present.
	decodeCANFrame(canPayload(canIDEngine, beBytes16(55)), c)
	if c.rpm != 55 {
		t.Errorf("rpm = %d, want 55", c.rpm)
	}
	if c.gear != 4 {
		t.Errorf("gear = %d, want untouched prior value 4", c.gear)
	}
}
