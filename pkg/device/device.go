package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/espprov/espprov-go/pkg/log"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// State is the binding state of a Device.
type State uint8

const (
	// StateDisconnected means no transport is bound.
	StateDisconnected State = iota
	// StateTransportBound means the transport is connected and a security
	// session is bound but no handshake was performed.
	StateTransportBound
	// StateSessionEstablished means the handshake completed.
	StateSessionEstablished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateTransportBound:
		return "TRANSPORT_BOUND"
	case StateSessionEstablished:
		return "SESSION_ESTABLISHED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// Device is one provisionable device. It is safe for concurrent use;
// operations run one at a time.
type Device struct {
	loc     Locator
	opts    options
	factory TransportFactory
	logger  *slog.Logger
	plog    log.Logger

	mu     sync.Mutex
	state  State
	connID string
	tr     transport.Transport
	sec    security.Security
}

// New creates a Device for loc. Nothing is dialled until Connect.
func New(loc Locator, opts ...Option) *Device {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = security.DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Device{
		loc:     loc,
		opts:    o,
		factory: o.factory,
		logger:  o.logger.With("device", loc.String()),
		plog:    log.OrNoop(o.protoLog),
	}
	if d.factory == nil {
		d.factory = d.opts.newTransport
	}
	return d
}

// Locator returns the locator the device was created with.
func (d *Device) Locator() Locator {
	return d.loc
}

// State returns the current binding state.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Connect binds a fresh transport and security session.
//
// Any previous binding is torn down first. With a nil config the session
// is Sec0 and no handshake is performed. Otherwise the scheme is built from
// the security registry and exactly one handshake runs on prov-session.
// On failure the device is left Disconnected.
func (d *Device) Connect(ctx context.Context, config *security.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.loc.validate(); err != nil {
		return opError(opConnect, "", err)
	}
	d.teardownLocked("reconnect")

	connID := uuid.NewString()
	tr, err := d.factory(d.loc, TransportConfig{ConnectionID: connID, Logger: d.opts.protoLog})
	if err != nil {
		return d.connectFailed(StepTransport, err)
	}
	if err := tr.Connect(ctx); err != nil {
		_ = tr.Disconnect()
		return d.connectFailed(StepTransport, err)
	}
	d.tr, d.connID = tr, connID
	d.setStateLocked(StateTransportBound, "transport connected")

	if config == nil {
		d.sec = security.NewSec0()
		d.logger.Debug("connected without handshake", "conn_id", connID, "transport", d.loc.Kind())
		return nil
	}

	sec, err := d.opts.registry.New(*config)
	if err != nil {
		d.teardownLocked("security setup failed")
		return d.connectFailed(StepSecurity, err)
	}
	d.sec = sec

	if err := d.handshakeLocked(ctx); err != nil {
		d.teardownLocked("handshake failed")
		return d.connectFailed(StepHandshake, err)
	}
	d.setStateLocked(StateSessionEstablished, "handshake complete")
	d.logger.Debug("session established", "conn_id", connID, "scheme", config.Scheme.String())
	return nil
}

func (d *Device) connectFailed(step string, err error) error {
	d.logger.Debug("connect failed", "step", step, "error", err)
	d.logError(log.LayerTransport, opConnect+" "+step, err)
	return opError(opConnect, step, err)
}

func (d *Device) handshakeLocked(ctx context.Context) error {
	req, err := d.sec.SessionSetupRequest()
	if err != nil {
		return err
	}
	d.logMessage(transport.EndpointSession, log.MessageTypeRequest, "SESSION_SETUP", nil, nil)
	start := time.Now()
	resp, err := d.tr.SendData(ctx, transport.EndpointSession, req)
	if err != nil {
		return err
	}
	err = d.sec.ProcessSessionSetupResponse(resp)
	rtt := time.Since(start)
	d.logMessage(transport.EndpointSession, log.MessageTypeResponse, "SESSION_SETUP", statusOf(err), &rtt)
	return err
}

// Disconnect releases the transport and forgets the session. It is safe to
// call in any state.
func (d *Device) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.teardownLocked("disconnect")
}

func (d *Device) teardownLocked(reason string) {
	if d.tr != nil {
		if err := d.tr.Disconnect(); err != nil {
			d.logger.Debug("transport disconnect", "error", err)
		}
	}
	d.tr = nil
	d.sec = nil
	if d.state != StateDisconnected {
		d.setStateLocked(StateDisconnected, reason)
	}
	d.connID = ""
}

func (d *Device) setStateLocked(s State, reason string) {
	old := d.state
	d.state = s
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.connID,
		Layer:        log.LayerSecurity,
		Category:     log.CategoryState,
		Transport:    d.loc.Kind(),
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySession,
			OldState: old.String(),
			NewState: s.String(),
			Reason:   reason,
		},
	})
}

func (d *Device) requireLocked(op string) error {
	if d.state == StateDisconnected || d.tr == nil || d.sec == nil {
		return opError(op, "", ErrNotConnected)
	}
	return nil
}

// exchange runs one protected request/response on ep and hands the
// plaintext reply to decode.
func (d *Device) exchange(ctx context.Context, ep transport.Endpoint, name string, req []byte, decode func([]byte) error) error {
	enc, err := d.sec.Encrypt(req)
	if err != nil {
		return err
	}
	d.logMessage(ep, log.MessageTypeRequest, name, nil, nil)

	start := time.Now()
	raw, err := d.tr.SendData(ctx, ep, enc)
	if err != nil {
		d.logError(log.LayerTransport, name, err)
		return err
	}
	plain, err := d.sec.Decrypt(raw)
	if err != nil {
		d.logError(log.LayerSecurity, name, err)
		return err
	}
	if decode != nil {
		err = decode(plain)
	}
	rtt := time.Since(start)
	d.logMessage(ep, log.MessageTypeResponse, name, statusOf(err), &rtt)
	if err != nil {
		d.logError(log.LayerProvisioning, name, err)
	}
	return err
}

// SendData exchanges raw bytes with a custom endpoint through the security
// session. The reply is returned decrypted but otherwise uninterpreted.
func (d *Device) SendData(ctx context.Context, ep transport.Endpoint, data []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireLocked(opSend); err != nil {
		return nil, err
	}
	var reply []byte
	err := d.exchange(ctx, ep, string(ep), data, func(b []byte) error {
		reply = b
		return nil
	})
	if err != nil {
		return nil, opError(opSend, string(ep), err)
	}
	return reply, nil
}

func (d *Device) logMessage(ep transport.Endpoint, typ log.MessageType, name string, status *wire.Status, rtt *time.Duration) {
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.connID,
		Direction:    directionOf(typ),
		Layer:        log.LayerProvisioning,
		Category:     log.CategoryMessage,
		Transport:    d.loc.Kind(),
		Endpoint:     string(ep),
		Message: &log.MessageEvent{
			Type:      typ,
			Name:      name,
			Status:    status,
			RoundTrip: rtt,
		},
	})
}

func (d *Device) logError(layer log.Layer, where string, err error) {
	data := &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: where}
	if st := statusOf(err); st != nil && *st != wire.StatusSuccess {
		code := int(*st)
		data.Code = &code
	}
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.connID,
		Layer:        layer,
		Category:     log.CategoryError,
		Transport:    d.loc.Kind(),
		Error:        data,
	})
}

func directionOf(typ log.MessageType) log.Direction {
	if typ == log.MessageTypeRequest {
		return log.DirectionOut
	}
	return log.DirectionIn
}

// statusOf returns the device status carried by err, Success for a nil
// error, or nil when err is not a device rejection.
func statusOf(err error) *wire.Status {
	if err == nil {
		st := wire.StatusSuccess
		return &st
	}
	var se *wire.StatusError
	if errors.As(err, &se) {
		st := se.Status
		return &st
	}
	return nil
}
