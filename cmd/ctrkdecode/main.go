// Command ctrkdecode decodes a CTRK telemetry capture and prints its
// calibrated sample sequence as CSV, optionally archiving a summary of the
// run to a local SQLite database.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/banshee-data/ctrkdecode/internal/ctrk"
	"github.com/banshee-data/ctrkdecode/internal/ctrklog"
	"github.com/banshee-data/ctrkdecode/internal/ctrkpath"
	"github.com/banshee-data/ctrkdecode/internal/ctrkstore"
	"github.com/banshee-data/ctrkdecode/internal/ctrkunits"
	"github.com/banshee-data/ctrkdecode/internal/ctrkversion"
)

var (
	sampleCap   = flag.Int("sample-cap", 0, "maximum samples to emit; 0 selects the default (72000)")
	speedUnit   = flag.String("speed-unit", ctrkunits.Knots, "GPS speed output unit: "+ctrkunits.GetValidUnitsString())
	archivePath = flag.String("archive", "", "path to a SQLite database to append a decode-run summary to; empty disables archiving")
	showVersion = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(ctrkversion.String())
		return
	}

	if !ctrkunits.IsValid(*speedUnit) {
		ctrklog.Logf("invalid -speed-unit %q: must be one of %s", *speedUnit, ctrkunits.GetValidUnitsString())
		os.Exit(2)
	}

	if flag.NArg() != 1 {
		ctrklog.Logf("usage: ctrkdecode [flags] <file.ctrk>")
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	buf, err := os.ReadFile(inputPath)
	if err != nil {
		ctrklog.Logf("failed to read %s: %v", inputPath, err)
		os.Exit(1)
	}

	decoder := ctrk.Decoder{SampleCap: *sampleCap}
	samples, err := decoder.Decode(buf)
	if err != nil {
		ctrklog.Logf("failed to decode %s: %v", inputPath, err)
		os.Exit(1)
	}

	if err := writeCSV(os.Stdout, samples, *speedUnit); err != nil {
		ctrklog.Logf("failed to write output: %v", err)
		os.Exit(1)
	}

	if *archivePath != "" {
		if err := archiveRun(*archivePath, inputPath, samples); err != nil {
			ctrklog.Logf("failed to archive decode run: %v", err)
			os.Exit(1)
		}
	}
}

func archiveRun(archivePath, sourceFile string, samples []ctrk.Sample) error {
	if err := ctrkpath.ValidateOutputPath(archivePath); err != nil {
		return err
	}

	db, err := ctrkstore.Open(archivePath)
	if err != nil {
		return err
	}
	defer db.Close()

	sampleCount, lapCount, firstMS, lastMS := ctrkstore.Summarize(samples)
	run := ctrkstore.DecodeRun{
		RunID:         ctrkstore.NewRunID(),
		SourceFile:    sourceFile,
		DecodedAtUnix: time.Now().Unix(),
		SampleCount:   sampleCount,
		LapCount:      lapCount,
		FirstTimeMS:   firstMS,
		LastTimeMS:    lastMS,
	}
	if err := db.Insert(run); err != nil {
		return err
	}
	ctrklog.Logf("archived decode run %s (%d samples, %d laps)", run.RunID, sampleCount, lapCount)
	return nil
}

var csvHeader = []string{
	"lap", "time_ms", "latitude", "longitude", "gps_speed",
	"rpm", "gear", "throttle_aps", "throttle_tps",
	"coolant_temp_c", "intake_temp_c",
	"front_wheel_speed_kph", "rear_wheel_speed_kph",
	"lean_deg", "lean_signed_deg", "pitch_deg_s",
	"accel_longitudinal_g", "accel_lateral_g",
	"front_brake_bar", "rear_brake_bar",
	"front_abs", "rear_abs", "tcs", "scs", "lif", "launch",
}

func writeCSV(w io.Writer, samples []ctrk.Sample, speedUnit string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range samples {
		speed := ctrkunits.ConvertSpeed(s.GPSSpeedKnots, speedUnit)
		row := []string{
			strconv.Itoa(s.Lap),
			strconv.FormatInt(s.TimeMS, 10),
			formatFloat(s.Latitude),
			formatFloat(s.Longitude),
			formatFloat(speed),
			formatFloat(ctrk.CalibrateRPM(s.RPM)),
			strconv.Itoa(int(s.Gear)),
			formatFloat(ctrk.CalibrateThrottle(s.ThrottleAPS)),
			formatFloat(ctrk.CalibrateThrottle(s.ThrottleTPS)),
			formatFloat(ctrk.CalibrateTemperature(s.CoolantTempRaw)),
			formatFloat(ctrk.CalibrateTemperature(s.IntakeTempRaw)),
			formatFloat(ctrk.CalibrateWheelSpeed(s.FrontWheelSpeedRaw)),
			formatFloat(ctrk.CalibrateWheelSpeed(s.RearWheelSpeedRaw)),
			formatFloat(ctrk.CalibrateLean(s.LeanRaw)),
			formatFloat(ctrk.CalibrateLean(s.LeanSignedRaw)),
			formatFloat(ctrk.CalibratePitch(s.PitchRaw)),
			formatFloat(ctrk.CalibrateAcceleration(s.AccelLongitudinalRaw)),
			formatFloat(ctrk.CalibrateAcceleration(s.AccelLateralRaw)),
			formatFloat(ctrk.CalibrateBrakePressure(s.FrontBrakeRaw)),
			formatFloat(ctrk.CalibrateBrakePressure(s.RearBrakeRaw)),
			strconv.FormatBool(s.FrontABS),
			strconv.FormatBool(s.RearABS),
			strconv.Itoa(int(s.TCS)),
			strconv.Itoa(int(s.SCS)),
			strconv.Itoa(int(s.LIF)),
			strconv.Itoa(int(s.Launch)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(ctrk.RoundFixed(v, 4), 'f', -1, 64)
}
