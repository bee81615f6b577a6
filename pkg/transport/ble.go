package transport

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/espprov/espprov-go/pkg/log"
)

// DefaultServiceUUID is the provisioning GATT service used when the
// device does not advertise a custom one.
const DefaultServiceUUID = "1775244d-6b43-439b-877c-060f2d9bed07"

// DefaultFallbackTable returns a fresh copy of the endpoint addresses used
// until descriptor discovery overrides them.
func DefaultFallbackTable() map[string]string {
	return map[string]string{
		string(EndpointSession): "ff51",
		string(EndpointConfig):  "ff52",
		string(EndpointVersion): "ff53",
	}
}

// BLEConfig configures a BLE transport.
type BLEConfig struct {
	// ServiceUUID is the provisioning service (default: DefaultServiceUUID).
	ServiceUUID string

	// Fallback maps endpoint names to characteristic UUIDs. It seeds the
	// channel handle on every connect and is never modified.
	// Nil means DefaultFallbackTable.
	Fallback map[string]string

	// Logger receives frame and state events (optional).
	Logger log.Logger

	// ConnectionID tags capture events.
	ConnectionID string
}

// DefaultBLEConfig returns the default BLE configuration.
func DefaultBLEConfig() BLEConfig {
	return BLEConfig{
		ServiceUUID: DefaultServiceUUID,
		Fallback:    DefaultFallbackTable(),
	}
}

// BLE is the radio-link transport. Endpoint addresses are learned after
// connecting by reading each characteristic's user description.
type BLE struct {
	dialer  Dialer
	addr    string
	config  BLEConfig
	capture capture

	mu     sync.Mutex
	periph Peripheral

	// handle maps lower-cased endpoint names to normalised characteristic
	// UUIDs. Rebuilt on every connect.
	handle map[string]string
	chars  map[string]Characteristic
}

// NewBLE creates a BLE transport for the peripheral at addr.
func NewBLE(dialer Dialer, addr string, config BLEConfig) *BLE {
	if config.ServiceUUID == "" {
		config.ServiceUUID = DefaultServiceUUID
	}
	if config.Fallback == nil {
		config.Fallback = DefaultFallbackTable()
	} else {
		config.Fallback = maps.Clone(config.Fallback)
	}
	return &BLE{
		dialer: dialer,
		addr:   addr,
		config: config,
		capture: capture{
			logger: config.Logger,
			connID: config.ConnectionID,
			kind:   KindBLE,
			remote: addr,
		},
	}
}

// Connect dials the peripheral and builds the channel handle.
func (t *BLE) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.periph != nil {
		if t.periph.Connected() {
			return nil
		}
		// Link dropped out of band; start over.
		t.teardownLocked("link lost")
	}

	p, err := t.dialer.Dial(ctx, t.addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", ErrConnection, t.addr, err)
	}

	chars, err := p.Characteristics(t.config.ServiceUUID)
	if err != nil {
		p.Close()
		return fmt.Errorf("%w: %s: %w", ErrConnection, t.config.ServiceUUID, err)
	}

	handle, byUUID := t.buildHandle(chars)

	t.periph = p
	t.handle = handle
	t.chars = byUUID
	t.capture.state("DISCONNECTED", "CONNECTED", "")
	return nil
}

// buildHandle seeds the handle from the fallback table and overrides it
// with every user description found on the service.
func (t *BLE) buildHandle(chars []Characteristic) (map[string]string, map[string]Characteristic) {
	handle := make(map[string]string, len(t.config.Fallback)+len(chars))
	for ep, u := range t.config.Fallback {
		if n, err := NormalizeUUID(u); err == nil {
			handle[strings.ToLower(ep)] = n
		}
	}

	byUUID := make(map[string]Characteristic, len(chars))
	for _, c := range chars {
		u, err := NormalizeUUID(c.UUID())
		if err != nil {
			continue
		}
		byUUID[u] = c

		if label, ok := userDescription(c); ok {
			handle[strings.ToLower(label)] = u
		}
	}
	return handle, byUUID
}

// userDescription reads the 0x2901 descriptor of c, if present.
func userDescription(c Characteristic) (string, bool) {
	descs, err := c.Descriptors()
	if err != nil {
		return "", false
	}
	for _, d := range descs {
		if !SameUUID(d.UUID(), UserDescriptionUUID) {
			continue
		}
		v, err := d.Read()
		if err != nil {
			return "", false
		}
		label := strings.TrimSpace(strings.TrimRight(string(v), "\x00"))
		return label, label != ""
	}
	return "", false
}

// Disconnect drops the link and clears the channel handle.
func (t *BLE) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.periph != nil {
		t.teardownLocked("")
	}
	return nil
}

func (t *BLE) teardownLocked(reason string) {
	_ = t.periph.Close()
	t.periph = nil
	t.handle = nil
	t.chars = nil
	t.capture.state("CONNECTED", "DISCONNECTED", reason)
}

// IsConnected asks the peripheral whether the link is up.
func (t *BLE) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.periph != nil && t.periph.Connected()
}

// SendData writes data to the endpoint's characteristic and reads the reply.
func (t *BLE) SendData(ctx context.Context, ep Endpoint, data []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.periph == nil {
		return nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.periph.Connected() {
		return nil, fmt.Errorf("%w: link to %s lost", ErrTransport, t.addr)
	}

	u, ok := t.handle[ep.key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEndpointNotFound, ep)
	}
	c, ok := t.chars[u]
	if !ok {
		return nil, fmt.Errorf("%w: characteristic %s for %s not found", ErrTransport, u, ep)
	}

	t.capture.frame(ep, log.DirectionOut, data)
	if err := c.Write(data); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrTransport, ep, err)
	}
	resp, err := c.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrTransport, ep, err)
	}
	t.capture.frame(ep, log.DirectionIn, resp)
	return resp, nil
}

// Endpoints returns a copy of the current channel handle, or nil when
// disconnected.
func (t *BLE) Endpoints() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handle == nil {
		return nil
	}
	return maps.Clone(t.handle)
}
