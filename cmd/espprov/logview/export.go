package logview

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/espprov/espprov-go/pkg/log"
)

// RunExport writes the capture in path as jsonl or csv. An empty output
// writes to stdout.
func RunExport(path, format, output string) error {
	var write func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		write = exportJSONL
	case "csv":
		write = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return write(reader, w)
}

// jsonEvent is the JSON shape of an event. Payload is dropped because
// CBOR-decoded maps are not JSON-encodable.
type jsonEvent struct {
	Timestamp    string  `json:"timestamp"`
	ConnectionID string  `json:"connection_id"`
	Direction    string  `json:"direction"`
	Layer        string  `json:"layer"`
	Category     string  `json:"category"`
	Transport    string  `json:"transport,omitempty"`
	RemoteAddr   string  `json:"remote_addr,omitempty"`
	Endpoint     string  `json:"endpoint,omitempty"`
	Type         string  `json:"type"`
	Name         string  `json:"name,omitempty"`
	Status       string  `json:"status,omitempty"`
	RoundTripMs  float64 `json:"round_trip_ms,omitempty"`
	Size         int     `json:"size,omitempty"`
	Data         []byte  `json:"data,omitempty"`
	State        string  `json:"state,omitempty"`
	Error        string  `json:"error,omitempty"`
}

func toJSONEvent(event log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp:    event.Timestamp.UTC().Format(timeLayout),
		ConnectionID: event.ConnectionID,
		Direction:    event.Direction.String(),
		Layer:        event.Layer.String(),
		Category:     event.Category.String(),
		Transport:    event.Transport,
		RemoteAddr:   event.RemoteAddr,
		Endpoint:     event.Endpoint,
		Type:         eventType(event),
	}
	switch {
	case event.Frame != nil:
		je.Size = event.Frame.Size
		je.Data = event.Frame.Data
	case event.Message != nil:
		je.Name = event.Message.Name
		if event.Message.Status != nil {
			je.Status = event.Message.Status.String()
		}
		if event.Message.RoundTrip != nil {
			je.RoundTripMs = float64(event.Message.RoundTrip.Microseconds()) / 1000
		}
	case event.StateChange != nil:
		je.State = event.StateChange.NewState
	case event.Error != nil:
		je.Error = event.Error.Message
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

// eventType is the lower-case type column used by both export formats.
func eventType(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "frame"
	case event.Message != nil:
		return "message"
	case event.StateChange != nil:
		return "state"
	case event.Error != nil:
		return "error"
	default:
		return "unknown"
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "connection_id", "direction", "layer", "category", "transport", "endpoint", "type", "name", "status", "size"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		je := toJSONEvent(event)
		size := ""
		if event.Frame != nil {
			size = strconv.Itoa(event.Frame.Size)
		}
		row := []string{
			je.Timestamp,
			je.ConnectionID,
			je.Direction,
			je.Layer,
			je.Category,
			je.Transport,
			je.Endpoint,
			je.Type,
			je.Name,
			je.Status,
			size,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}
