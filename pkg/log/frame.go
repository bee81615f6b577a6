package log

import "time"

// MaxFrameDataSize is the maximum payload size included in frame events.
// Larger payloads are truncated.
const MaxFrameDataSize = 4096

// NewFrameEvent builds a transport layer event for one payload.
func NewFrameEvent(connID, endpoint string, direction Direction, data []byte) Event {
	frameData := data
	truncated := false
	if len(data) > MaxFrameDataSize {
		frameData = data[:MaxFrameDataSize]
		truncated = true
	}

	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Endpoint:     endpoint,
		Frame: &FrameEvent{
			Size:      len(data),
			Data:      append([]byte(nil), frameData...),
			Truncated: truncated,
		},
	}
}
