// Package ctrkstats computes per-lap summary statistics over a decoded
// sample sequence: speed percentiles, lean extremes, brake usage.
package ctrkstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/ctrkdecode/internal/ctrk"
)

// LapSummary holds the aggregate figures for a single lap's sample window.
type LapSummary struct {
	Lap int

	SampleCount int

	MaxSpeedKPH float64
	P50SpeedKPH float64
	P85SpeedKPH float64

	MaxRPM     uint16
	MeanRPM    float64
	MaxLeanDeg float64

	MaxFrontBrakeBar float64
	MaxRearBrakeBar  float64
}

// Summarize groups samples by lap (in the order laps first appear) and
// computes one LapSummary per lap.
func Summarize(samples []ctrk.Sample) []LapSummary {
	if len(samples) == 0 {
		return nil
	}

	order := []int{}
	grouped := map[int][]ctrk.Sample{}
	for _, s := range samples {
		if _, ok := grouped[s.Lap]; !ok {
			order = append(order, s.Lap)
		}
		grouped[s.Lap] = append(grouped[s.Lap], s)
	}

	summaries := make([]LapSummary, 0, len(order))
	for _, lap := range order {
		summaries = append(summaries, summarizeLap(lap, grouped[lap]))
	}
	return summaries
}

func summarizeLap(lap int, samples []ctrk.Sample) LapSummary {
	speeds := make([]float64, len(samples))
	rpms := make([]float64, len(samples))
	var maxRPM uint16
	var maxLean float64
	var maxFrontBrake, maxRearBrake float64

	for i, s := range samples {
		kph := ctrk.CalibrateGPSSpeed(s.GPSSpeedKnots)
		speeds[i] = kph
		rpms[i] = float64(s.RPM)
		if s.RPM > maxRPM {
			maxRPM = s.RPM
		}
		if lean := absFloat(ctrk.CalibrateLean(s.LeanSignedRaw)); lean > maxLean {
			maxLean = lean
		}
		if fb := ctrk.CalibrateBrakePressure(s.FrontBrakeRaw); fb > maxFrontBrake {
			maxFrontBrake = fb
		}
		if rb := ctrk.CalibrateBrakePressure(s.RearBrakeRaw); rb > maxRearBrake {
			maxRearBrake = rb
		}
	}

	sortedSpeeds := append([]float64(nil), speeds...)
	sort.Float64s(sortedSpeeds)

	return LapSummary{
		Lap:              lap,
		SampleCount:      len(samples),
		MaxSpeedKPH:      maxOf(sortedSpeeds),
		P50SpeedKPH:      stat.Quantile(0.5, stat.Empirical, sortedSpeeds, nil),
		P85SpeedKPH:      stat.Quantile(0.85, stat.Empirical, sortedSpeeds, nil),
		MaxRPM:           maxRPM,
		MeanRPM:          stat.Mean(rpms, nil),
		MaxLeanDeg:       maxLean,
		MaxFrontBrakeBar: maxFrontBrake,
		MaxRearBrakeBar:  maxRearBrake,
	}
}

func maxOf(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)-1]
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
