package logview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/espprov/espprov-go/pkg/log"
)

func TestStatsCountsByLayer(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Layer: log.LayerTransport},
		{Timestamp: ts, Layer: log.LayerTransport},
		{Timestamp: ts, Layer: log.LayerSecurity},
		{Timestamp: ts, Layer: log.LayerProvisioning},
	}
	path := createTestLogFile(t, events)

	stats, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if stats.TotalEvents != 4 {
		t.Errorf("expected 4 events, got %d", stats.TotalEvents)
	}
	if stats.EventsByLayer[log.LayerTransport] != 2 {
		t.Errorf("expected 2 transport events, got %d", stats.EventsByLayer[log.LayerTransport])
	}

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	for _, want := range []string{"TRANSPORT:", "SECURITY:", "PROVISIONING:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestStatsSkipsDirectionlessEvents(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Direction: log.DirectionOut, Category: log.CategoryMessage},
		{Timestamp: ts, Direction: log.DirectionIn, Category: log.CategoryMessage},
		{Timestamp: ts, Category: log.CategoryState},
		{Timestamp: ts, Category: log.CategoryError},
	}
	path := createTestLogFile(t, events)

	stats, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got := stats.EventsByDirection[log.DirectionIn]; got != 1 {
		t.Errorf("expected 1 inbound event, got %d", got)
	}
	if got := stats.EventsByDirection[log.DirectionOut]; got != 1 {
		t.Errorf("expected 1 outbound event, got %d", got)
	}
	if got := stats.EventsByDirection[log.DirectionNone]; got != 0 {
		t.Errorf("expected state and error events uncounted, got %d", got)
	}
}

func TestStatsCountsErrorsAndEndpoints(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Category: log.CategoryMessage, Endpoint: "prov-scan"},
		{Timestamp: ts, Category: log.CategoryState},
		{Timestamp: ts, Category: log.CategoryError, Endpoint: "prov-config", Error: &log.ErrorEventData{Message: "test"}},
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"MESSAGE:", "STATE:", "ERROR:", "prov-scan:", "prov-config:", "Errors: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestStatsConnections(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	rtt1 := 2 * time.Millisecond
	rtt2 := 4 * time.Millisecond
	events := []log.Event{
		{Timestamp: base, ConnectionID: "aaaaaaaa-1111", Transport: "ble", RemoteAddr: "AA:BB"},
		{Timestamp: base.Add(time.Second), ConnectionID: "aaaaaaaa-1111",
			Message: &log.MessageEvent{Type: log.MessageTypeResponse, RoundTrip: &rtt1}},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "aaaaaaaa-1111",
			Message: &log.MessageEvent{Type: log.MessageTypeResponse, RoundTrip: &rtt2}},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "bbbbbbbb-2222"},
	}
	path := createTestLogFile(t, events)

	stats, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(stats.Connections) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(stats.Connections))
	}
	conn := stats.Connections["aaaaaaaa-1111"]
	if conn.Events != 3 || conn.Exchanges != 2 {
		t.Errorf("unexpected connection stats: %+v", conn)
	}
	if conn.MeanRoundTrip() != 3*time.Millisecond {
		t.Errorf("expected 3ms mean, got %v", conn.MeanRoundTrip())
	}
	if conn.Transport != "ble" || conn.RemoteAddr != "AA:BB" {
		t.Errorf("expected transport info, got %+v", conn)
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	output := buf.String()
	first := strings.Index(output, "[aaaaaaaa]")
	second := strings.Index(output, "[bbbbbbbb]")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected connections in first-seen order, got: %s", output)
	}
	if !strings.Contains(output, "Exchanges: 2 (mean 3.000ms)") {
		t.Errorf("expected exchange summary, got: %s", output)
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("expected zero total, got: %s", buf.String())
	}
}
