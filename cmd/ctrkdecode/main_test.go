package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/banshee-data/ctrkdecode/internal/ctrk"
	"github.com/banshee-data/ctrkdecode/internal/ctrkunits"
)

func TestWriteCSVHeaderAndRowCount(t *testing.T) {
	samples := []ctrk.Sample{
		{Lap: 1, TimeMS: 1000, GPSSpeedKnots: 5},
		{Lap: 1, TimeMS: 1100, GPSSpeedKnots: 6},
	}
	var buf bytes.Buffer
	if err := writeCSV(&buf, samples, ctrkunits.Knots); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "lap,time_ms,latitude") {
		t.Errorf("header = %q, want it to start with the lap/time_ms/latitude columns", lines[0])
	}
}

func TestWriteCSVEmptySamplesStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, nil, ctrkunits.Knots); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (header only)", len(lines))
	}
}

func TestWriteCSVConvertsSpeedUnit(t *testing.T) {
	samples := []ctrk.Sample{{GPSSpeedKnots: 1}}
	var buf bytes.Buffer
	if err := writeCSV(&buf, samples, ctrkunits.KPH); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	if !strings.Contains(buf.String(), "1.852") {
		t.Errorf("expected converted speed 1.852 in output, got %q", buf.String())
	}
}
