package ctrk

// defaultSampleCap is the sanity ceiling on total emitted samples, matching
// the reference implementation's static buffer size. Exposed as a
// configurable field on Decoder rather than a hard constant, since callers
// decoding longer sessions may need to raise it.
const defaultSampleCap = 72000

const emissionPeriodMS = 100

// emissionClock drives the 100ms sample-emission grid described in §4.8: a
// free-running schedule that ticks independently of input record arrival
// rate, with its phase reset to the crossing timestamp on every lap
// boundary.
type emissionClock struct {
	started bool
	nextMS  int64
	emitted int
	cap     int
}

func newEmissionClock(cap int) *emissionClock {
	if cap <= 0 {
		cap = defaultSampleCap
	}
	return &emissionClock{cap: cap}
}

// start initializes the clock at the first valid GPS fix's timestamp. The
// caller is responsible for then calling tick once to produce the initial
// sample at that same timestamp (§4.9: "causes an initial sample to be
// emitted immediately at the current timestamp").
func (e *emissionClock) start(atMS int64) {
	if e.started {
		return
	}
	e.started = true
	e.nextMS = atMS
}

// resetPhase realigns the emission grid to a lap-crossing timestamp (§4.8's
// lap boundary rule / phase reset).
func (e *emissionClock) resetPhase(atMS int64) {
	e.nextMS = atMS
}

// tick emits zero or more samples for every 100ms boundary at or before t,
// up to the configured cap, via emit. It advances the schedule by exactly
// 100ms per emission.
func (e *emissionClock) tick(t int64, emit func(tickMS int64)) {
	if !e.started {
		return
	}
	for t >= e.nextMS {
		if e.emitted >= e.cap {
			return
		}
		emit(e.nextMS)
		e.emitted++
		e.nextMS += emissionPeriodMS
	}
}
