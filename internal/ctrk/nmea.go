package ctrk

import (
	"strconv"
	"strings"
)

// gprmcFix is a successfully validated $GPRMC sentence, converted to
// decimal degrees and km/h-ready knots.
type gprmcFix struct {
	latitude  float64
	longitude float64
	speedKnots float64
}

// parseGPRMC validates and decodes an ASCII NMEA sentence. Only $GPRMC is
// consumed; any other talker/sentence is ignored (ok=false, no error):
// all local faults are absorbed silently.
//
// Validation order: checksum, then status, then field parsing. Any failure
// at any stage returns ok=false.
func parseGPRMC(sentence string) (fix gprmcFix, ok bool) {
	sentence = strings.TrimRight(sentence, "\r\n")

	star := strings.LastIndexByte(sentence, '*')
	if star < 0 || star+3 > len(sentence) || sentence == "" || sentence[0] != '$' {
		return gprmcFix{}, false
	}

	body := sentence[1:star]
	wantHex := sentence[star+1 : star+3]
	want, err := strconv.ParseUint(wantHex, 16, 8)
	if err != nil {
		return gprmcFix{}, false
	}

	var xor byte
	for i := 0; i < len(body); i++ {
		xor ^= body[i]
	}
	if xor != byte(want) {
		return gprmcFix{}, false
	}

	fields := strings.Split(body, ",")
	if len(fields) < 7 || fields[0] != "GPRMC" {
		return gprmcFix{}, false
	}

	status := fields[2]
	if status != "A" {
		return gprmcFix{}, false
	}

	lat, err := parseDegMin(fields[3], fields[4], 2)
	if err != nil {
		return gprmcFix{}, false
	}
	lon, err := parseDegMin(fields[5], fields[6], 3)
	if err != nil {
		return gprmcFix{}, false
	}

	speed := 0.0
	if len(fields) > 7 && fields[7] != "" {
		speed, err = strconv.ParseFloat(fields[7], 64)
		if err != nil {
			return gprmcFix{}, false
		}
	}

	return gprmcFix{latitude: lat, longitude: lon, speedKnots: speed}, true
}

// parseDegMin converts a DDMM.mmmm (or DDDMM.mmmm) field plus a hemisphere
// letter into signed decimal degrees: deg_int + min/60, negated for S/W.
func parseDegMin(value, hemisphere string, degDigits int) (float64, error) {
	if len(value) < degDigits || hemisphere == "" {
		return 0, strconv.ErrSyntax
	}
	degPart := value[:degDigits]
	minPart := value[degDigits:]

	deg, err := strconv.ParseFloat(degPart, 64)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return 0, err
	}

	decimal := deg + min/60.0
	switch hemisphere {
	case "S", "W":
		decimal = -decimal
	case "N", "E":
		// no-op
	default:
		return 0, strconv.ErrSyntax
	}
	return decimal, nil
}
