package ctrk

import "time"

// timestampFieldSize is the width of the on-disk time field embedded in
// every record header (§4.3, §6): millis u16 LE, sec, min, hour, weekday,
// day, month u8 each, year u16 LE.
const timestampFieldSize = 10

// minSyncedYear is the threshold below which the on-disk year is treated as
// "unset" (the device defaults to year 2000 before its first GPS time-sync).
const minSyncedYear = 2000

// timestampState carries the last-seen calendar fields and millis-wrap
// compensation needed to reconstruct a monotonic millisecond epoch from
// each record's 10-byte time field (§4.3).
type timestampState struct {
	have     bool
	year     int
	month    int
	day      int
	hour     int
	minute   int
	second   int
	millis   int
	lastEpoch int64
}

// rawTimestamp is the as-read, unvalidated contents of a record's 10-byte
// time field.
type rawTimestamp struct {
	millis  uint16
	sec     uint8
	minute  uint8
	hour    uint8
	weekday uint8
	day     uint8
	month   uint8
	year    uint16
}

func readTimestampField(r *reader) (rawTimestamp, error) {
	var t rawTimestamp
	var err error
	if t.millis, err = r.u16le(); err != nil {
		return t, err
	}
	if t.sec, err = r.u8(); err != nil {
		return t, err
	}
	if t.minute, err = r.u8(); err != nil {
		return t, err
	}
	if t.hour, err = r.u8(); err != nil {
		return t, err
	}
	if t.weekday, err = r.u8(); err != nil {
		return t, err
	}
	if t.day, err = r.u8(); err != nil {
		return t, err
	}
	if t.month, err = r.u8(); err != nil {
		return t, err
	}
	if t.year, err = r.u16le(); err != nil {
		return t, err
	}
	return t, nil
}

// reconstruct turns a raw on-disk time field into a millisecond epoch:
// wrap compensation is applied first, then the monotonicity carry-forward
// check.
func (s *timestampState) reconstruct(raw rawTimestamp) int64 {
	year := int(raw.year)
	if year < minSyncedYear {
		// Unset: carry the previous year rather than trusting the
		// device's pre-sync default.
		if s.have {
			year = s.year
		} else {
			year = minSyncedYear
		}
	}
	month, day := int(raw.month), int(raw.day)
	hour, minute, second, millis := int(raw.hour), int(raw.minute), int(raw.sec), int(raw.millis)

	candidate := civilToEpochMS(year, month, day, hour, minute, second, millis)

	if !s.have {
		s.commit(year, month, day, hour, minute, second, millis, candidate)
		return candidate
	}

	delta := candidate - s.lastEpoch

	sameCalendarSecond := year == s.year && month == s.month && day == s.day &&
		hour == s.hour && minute == s.minute

	if delta < -500 && sameCalendarSecond {
		// millis counter wrapped; compensate and re-derive delta against
		// the compensated candidate.
		candidate += 1000
		delta = candidate - s.lastEpoch
	}

	if delta < -10 {
		// Still unreliable after wrap compensation: carry the previous
		// timestamp forward rather than accept a backwards jump.
		return s.lastEpoch
	}

	s.commit(year, month, day, hour, minute, second, millis, candidate)
	return candidate
}

func (s *timestampState) commit(year, month, day, hour, minute, second, millis int, epoch int64) {
	s.have = true
	s.year, s.month, s.day = year, month, day
	s.hour, s.minute, s.second, s.millis = hour, minute, second, millis
	s.lastEpoch = epoch
}

// civilToEpochMS maps a local-time civil calendar field set to milliseconds
// since the Unix epoch, using the host's local time zone (§4.3: "the
// on-disk calendar is local, not UTC").
func civilToEpochMS(year, month, day, hour, minute, second, millis int) int64 {
	t := time.Date(year, time.Month(month), day, hour, minute, second, millis*int(time.Millisecond), time.Local)
	return t.UnixMilli()
}
