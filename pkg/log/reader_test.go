package log

import (
	"path/filepath"
	"testing"
	"time"
)

func writeCapture(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := []Event{
		{Timestamp: base, ConnectionID: "a", Direction: DirectionOut, Layer: LayerTransport, Endpoint: "prov-session", Transport: "ble"},
		{Timestamp: base.Add(time.Second), ConnectionID: "a", Direction: DirectionIn, Layer: LayerTransport, Endpoint: "prov-session", Transport: "ble"},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "b", Direction: DirectionOut, Layer: LayerProvisioning, Endpoint: "prov-scan", Transport: "softap"},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "b", Category: CategoryState, Layer: LayerSecurity, Transport: "softap"},
	}
	path := writeCapture(t, events)

	in := DirectionIn
	none := DirectionNone
	layer := LayerProvisioning
	state := CategoryState
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"connection", Filter{ConnectionID: "a"}, 2},
		{"direction", Filter{Direction: &in}, 1},
		{"no direction", Filter{Direction: &none}, 1},
		{"layer", Filter{Layer: &layer}, 1},
		{"category", Filter{Category: &state}, 1},
		{"endpoint case-insensitive", Filter{Endpoint: "PROV-SESSION"}, 2},
		{"transport", Filter{Transport: "softap"}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"no match", Filter{ConnectionID: "zzz"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(path, tt.filter)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.plog")); err == nil {
		t.Error("expected error for missing file")
	}
}
