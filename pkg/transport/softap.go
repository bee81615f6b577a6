package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/espprov/espprov-go/pkg/log"
)

// SoftAP defaults.
const (
	// DefaultSoftAPBaseURL is the address devices use on their own AP.
	DefaultSoftAPBaseURL = "http://192.168.4.1:80"

	DefaultSoftAPContentType = "application/x-www-form-urlencoded"
	DefaultSoftAPAccept      = "text/plain"

	// MaxResponseSize caps the body read from the device.
	MaxResponseSize = 64 * 1024
)

// SoftAPConfig configures a SoftAP transport.
type SoftAPConfig struct {
	// BaseURL is the device's HTTP root (default: DefaultSoftAPBaseURL).
	BaseURL string

	// HTTPClient performs requests (default: 10s timeout client).
	HTTPClient *http.Client

	// ContentType and Accept are sent with every POST.
	ContentType string
	Accept      string

	// Logger receives frame and state events (optional).
	Logger log.Logger

	// ConnectionID tags capture events.
	ConnectionID string
}

// SoftAP is the local-network transport. It is stateless on the wire;
// Connect only probes reachability.
type SoftAP struct {
	base    *url.URL
	client  *http.Client
	config  SoftAPConfig
	capture capture

	mu        sync.Mutex
	connected bool
}

// NewSoftAP creates a SoftAP transport.
func NewSoftAP(config SoftAPConfig) (*SoftAP, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultSoftAPBaseURL
	}
	if config.ContentType == "" {
		config.ContentType = DefaultSoftAPContentType
	}
	if config.Accept == "" {
		config.Accept = DefaultSoftAPAccept
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", config.BaseURL)
	}

	return &SoftAP{
		base:   base,
		client: client,
		config: config,
		capture: capture{
			logger: config.Logger,
			connID: config.ConnectionID,
			kind:   KindSoftAP,
			remote: base.String(),
		},
	}, nil
}

// BaseURL returns the device's HTTP root.
func (t *SoftAP) BaseURL() *url.URL {
	u := *t.base
	return &u
}

// Connect probes the version endpoint.
func (t *SoftAP) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.connected {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpointURL(EndpointVersion), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: probe %s: %s", ErrConnection, EndpointVersion, resp.Status)
	}

	t.connected = true
	t.capture.state("DISCONNECTED", "CONNECTED", "")
	return nil
}

// Disconnect marks the transport disconnected.
func (t *SoftAP) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.connected {
		t.connected = false
		t.capture.state("CONNECTED", "DISCONNECTED", "")
	}
	return nil
}

// IsConnected reports whether the last probe succeeded and Disconnect has
// not been called since.
func (t *SoftAP) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// SendData POSTs data to the endpoint path and returns the response body.
func (t *SoftAP) SendData(ctx context.Context, ep Endpoint, data []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.connected {
		return nil, ErrNotConnected
	}
	if ep.key() == "" {
		return nil, fmt.Errorf("%w: empty endpoint", ErrEndpointNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpointURL(ep), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", t.config.ContentType)
	req.Header.Set("Accept", t.config.Accept)

	t.capture.frame(ep, log.DirectionOut, data)
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, ep, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrEndpointNotFound, ep)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: %s", ErrTransport, ep, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrTransport, ep, err)
	}
	t.capture.frame(ep, log.DirectionIn, body)
	return body, nil
}

func (t *SoftAP) endpointURL(ep Endpoint) string {
	return t.base.JoinPath(string(ep)).String()
}
