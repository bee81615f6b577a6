package device

import (
	"log/slog"
	"maps"
	"net/http"

	"github.com/espprov/espprov-go/pkg/log"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

// TransportConfig is passed to a TransportFactory on every Connect.
type TransportConfig struct {
	// ConnectionID is fresh for each Connect.
	ConnectionID string

	// Logger receives transport capture events (may be nil).
	Logger log.Logger
}

// TransportFactory builds a new, unconnected transport for a locator.
type TransportFactory func(loc Locator, cfg TransportConfig) (transport.Transport, error)

type options struct {
	factory     TransportFactory
	dialer      transport.Dialer
	httpClient  *http.Client
	serviceUUID string
	fallback    map[string]string
	registry    *security.Registry
	protoLog    log.Logger
	logger      *slog.Logger
}

// Option configures a Device.
type Option func(*options)

// WithTransportFactory replaces the built-in BLE/SoftAP selection.
func WithTransportFactory(f TransportFactory) Option {
	return func(o *options) { o.factory = f }
}

// WithBLEDialer sets the dialer used for radio locators.
// The default dials through the host's go-ble device.
func WithBLEDialer(d transport.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// WithHTTPClient sets the client used for network locators.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithServiceUUID sets the BLE provisioning service.
func WithServiceUUID(uuid string) Option {
	return func(o *options) { o.serviceUUID = uuid }
}

// WithFallbackTable sets the endpoint-to-characteristic table used before
// descriptor discovery. The table is copied.
func WithFallbackTable(table map[string]string) Option {
	return func(o *options) { o.fallback = maps.Clone(table) }
}

// WithSecurityRegistry sets the registry used to build security sessions.
func WithSecurityRegistry(r *security.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithProtocolLogger sets the protocol capture logger.
func WithProtocolLogger(l log.Logger) Option {
	return func(o *options) { o.protoLog = l }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func (o *options) newTransport(loc Locator, cfg TransportConfig) (transport.Transport, error) {
	if loc.BaseURL != nil {
		t, err := transport.NewSoftAP(transport.SoftAPConfig{
			BaseURL:      loc.BaseURL.String(),
			HTTPClient:   o.httpClient,
			Logger:       cfg.Logger,
			ConnectionID: cfg.ConnectionID,
		})
		if err != nil {
			return nil, err
		}
		return t, nil
	}

	dialer := o.dialer
	if dialer == nil {
		dialer = transport.NewBLEDialer()
	}
	return transport.NewBLE(dialer, loc.Address, transport.BLEConfig{
		ServiceUUID:  o.serviceUUID,
		Fallback:     o.fallback,
		Logger:       cfg.Logger,
		ConnectionID: cfg.ConnectionID,
	}), nil
}
