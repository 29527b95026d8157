package ctrk

// Record type tags in the data section (§4.9, §6).
const (
	recTypeTerminator = 0
	recTypeBus        = 1
	recTypeGPS        = 2
	recTypeLapMarker  = 5
)

// recordHeaderSize is the 14-byte fixed portion of every record: rec_type
// (2), total_size (2), and the 10-byte timestamp field.
const recordHeaderSize = 4 + timestampFieldSize

// driver is the outer record loop (C9). It owns all mutable parse state:
// the channel cache, GPS history, timestamp reconstruction state, lap
// counter, and emission clock, for the duration of a single Decode call.
type driver struct {
	cache     *channelCache
	gps       gpsHistory
	ts        timestampState
	clock     *emissionClock
	fl        finishLine
	lap       int
	gpsLocked bool // true once the first valid fix has started the clock
	samples   []Sample
}

func newDriver(fl finishLine, sampleCap int) *driver {
	return &driver{
		cache: newChannelCache(),
		clock: newEmissionClock(sampleCap),
		fl:    fl,
		lap:   1,
	}
}

// run walks the record stream starting at dataStart and returns every
// emitted sample. Malformed records (too short, or extending past the
// buffer) stop parsing cleanly and whatever has been emitted so far is
// returned; this is never a Go error.
func (d *driver) run(buf []byte, dataStart int) []Sample {
	r := newReader(buf)
	r.seek(dataStart)

	for {
		recordStart := r.tell()
		if r.remaining() < recordHeaderSize {
			break
		}

		recType, err := r.u16le()
		if err != nil {
			break
		}
		totalSize, err := r.u16le()
		if err != nil {
			break
		}

		if recType == recTypeTerminator || totalSize == 0 {
			break
		}
		if int(totalSize) < recordHeaderSize {
			break
		}

		raw, err := readTimestampField(r)
		if err != nil {
			break
		}
		timeMS := d.ts.reconstruct(raw)

		payloadLen := int(totalSize) - recordHeaderSize
		payload, err := r.bytes(payloadLen)
		if err != nil {
			// total_size extends past the file end: stop cleanly.
			r.seek(recordStart)
			break
		}

		switch recType {
		case recTypeBus:
			decodeCANFrame(payload, d.cache)
		case recTypeGPS:
			d.handleGPS(payload, timeMS)
		case recTypeLapMarker:
			d.handleLapCrossing(timeMS)
		default:
			// unrecognised record types are skipped
		}

		d.clock.tick(timeMS, func(tickMS int64) {
			d.emit(tickMS)
		})
	}

	return d.samples
}

func (d *driver) handleGPS(payload []byte, timeMS int64) {
	fix, ok := parseGPRMC(string(payload))
	if !ok {
		return
	}
	d.cache.latitude = fix.latitude
	d.cache.longitude = fix.longitude
	d.cache.gpsSpeedKnots = fix.speedKnots
	d.gps.update(fix.latitude, fix.longitude)

	if !d.gpsLocked {
		d.gpsLocked = true
		d.clock.start(timeMS)
	}

	if d.fl.crossesFinishLine(d.gps) {
		d.handleLapCrossing(timeMS)
	}
}

// handleLapCrossing applies the effects of a finish-line crossing, whether
// detected by GPS geometry or signalled by an explicit lap-marker record
// (§4.7, §4.9 rec_type 5): advance the lap, reset the emission clock's
// phase, and clear the fuel baseline.
func (d *driver) handleLapCrossing(timeMS int64) {
	d.lap++
	d.clock.resetPhase(timeMS)
	d.cache.resetLapBaseline()
}

func (d *driver) emit(tickMS int64) {
	s := d.cache.snapshot(d.lap, tickMS, d.cache.latitude, d.cache.longitude, d.cache.gpsSpeedKnots)
	d.samples = append(d.samples, s)
}
