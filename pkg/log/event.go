package log

import (
	"time"

	"github.com/espprov/espprov-go/pkg/wire"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies one Connect..Disconnect cycle (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow. State and error events carry none.
	Direction Direction `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Transport names the channel variant ("ble" or "softap").
	Transport string `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the radio address or base URL of the device.
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Endpoint is the logical endpoint the event relates to.
	Endpoint string `cbor:"8,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Provisioning layer (decoded)
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Lifecycle
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionNone marks events that do not flow either way.
	DirectionNone Direction = 0
	// DirectionIn indicates a message from the device.
	DirectionIn Direction = 1
	// DirectionOut indicates a message to the device.
	DirectionOut Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "-"
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the channel layer (raw bytes).
	LayerTransport Layer = 0
	// LayerSecurity is the session/cipher layer.
	LayerSecurity Layer = 1
	// LayerProvisioning is the scan/config sub-protocol layer.
	LayerProvisioning Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerSecurity:
		return "SECURITY"
	case LayerProvisioning:
		return "PROVISIONING"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message.
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw bytes written to or read from an endpoint.
type FrameEvent struct {
	// Size is the payload size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw payload (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded sub-protocol message.
type MessageEvent struct {
	// Type distinguishes request from response.
	Type MessageType `cbor:"1,keyasint"`

	// Name is the message type name, e.g. "CMD_SCAN_START".
	Name string `cbor:"2,keyasint"`

	// Status is the response status (responses only).
	Status *wire.Status `cbor:"3,keyasint,omitempty"`

	// Payload is a summary of the decoded body.
	Payload any `cbor:"4,keyasint,omitempty"`

	// RoundTrip is the time from request write to response read
	// (responses only). Stored as nanoseconds.
	RoundTrip *time.Duration `cbor:"5,keyasint,omitempty"`
}

// MessageType distinguishes request from response.
type MessageType uint8

const (
	// MessageTypeRequest indicates a request message.
	MessageTypeRequest MessageType = 0
	// MessageTypeResponse indicates a response message.
	MessageTypeResponse MessageType = 1
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeRequest:
		return "REQUEST"
	case MessageTypeResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures connection, session and provisioning lifecycle.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a transport state change.
	StateEntityConnection StateEntity = 0
	// StateEntitySession indicates a security session state change.
	StateEntitySession StateEntity = 1
	// StateEntityProvisioning indicates a station state change.
	StateEntityProvisioning StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntitySession:
		return "SESSION"
	case StateEntityProvisioning:
		return "PROVISIONING"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the device status code, if the error carried one.
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context names the operation being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
