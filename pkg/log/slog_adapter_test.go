package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/espprov/espprov-go/pkg/wire"
)

func logToJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterFrameEvent(t *testing.T) {
	entry := logToJSON(t, NewFrameEvent("conn-1", "prov-ctrl", DirectionIn, []byte{1, 2, 3}))

	if entry["conn_id"] != "conn-1" {
		t.Errorf("conn_id = %v", entry["conn_id"])
	}
	if entry["endpoint"] != "prov-ctrl" {
		t.Errorf("endpoint = %v", entry["endpoint"])
	}
	if entry["size"] != float64(3) {
		t.Errorf("size = %v", entry["size"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestSlogAdapterMessageEvent(t *testing.T) {
	status := wire.StatusInternalError
	entry := logToJSON(t, Event{
		Timestamp: time.Now(),
		Layer:     LayerProvisioning,
		Transport: "softap",
		Message: &MessageEvent{
			Type:   MessageTypeResponse,
			Name:   "RESP_SET_CONFIG",
			Status: &status,
		},
	})

	if entry["msg"] != "protocol" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["message"] != "RESP_SET_CONFIG" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["msg_type"] != "RESPONSE" {
		t.Errorf("msg_type = %v", entry["msg_type"])
	}
	if entry["status"] != "INTERNAL_ERROR" {
		t.Errorf("status = %v", entry["status"])
	}
	if entry["transport"] != "softap" {
		t.Errorf("transport = %v", entry["transport"])
	}
}

func TestSlogAdapterStateAndError(t *testing.T) {
	entry := logToJSON(t, Event{
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntitySession,
			OldState: "UNESTABLISHED",
			NewState: "ESTABLISHED",
		},
	})
	if entry["entity"] != "SESSION" || entry["new_state"] != "ESTABLISHED" {
		t.Errorf("state entry = %v", entry)
	}

	code := 5
	entry = logToJSON(t, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerProvisioning, Message: "boom", Code: &code, Context: "apply-config"},
	})
	if entry["error_context"] != "apply-config" || entry["error_code"] != float64(5) {
		t.Errorf("error entry = %v", entry)
	}
}

func TestMultiLoggerFansOutAndSkipsNil(t *testing.T) {
	var a, b recorder
	m := NewMultiLogger(&a, nil, &b)
	m.Log(Event{ConnectionID: "x"})

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("got %d and %d events, want 1 and 1", len(a.events), len(b.events))
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) is not NoopLogger")
	}
	r := &recorder{}
	if OrNoop(r) != Logger(r) {
		t.Error("OrNoop changed a non-nil logger")
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) Log(e Event) { r.events = append(r.events, e) }
