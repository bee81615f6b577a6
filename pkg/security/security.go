package security

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/espprov/espprov-go/pkg/wire"
)

// Security errors.
var (
	// ErrHandshake indicates the device's session reply was rejected.
	ErrHandshake = errors.New("handshake failed")

	// ErrNotEstablished indicates Encrypt or Decrypt was called before a
	// scheme that needs key material finished its handshake.
	ErrNotEstablished = errors.New("session not established")

	// ErrUnsupportedScheme indicates no factory is registered for a scheme.
	ErrUnsupportedScheme = errors.New("unsupported security scheme")
)

// Scheme identifies a security scheme on the wire.
type Scheme = wire.SecScheme

// Known schemes.
const (
	Scheme0 = wire.SecScheme0
	Scheme1 = wire.SecScheme1
	Scheme2 = wire.SecScheme2
)

// Security is one session's handshake state and payload cipher.
type Security interface {
	// SessionSetupRequest returns the first handshake message.
	SessionSetupRequest() ([]byte, error)

	// ProcessSessionSetupResponse validates the device's reply and marks
	// the session established on success.
	ProcessSessionSetupResponse(resp []byte) error

	// Encrypt transforms an outbound payload.
	Encrypt(data []byte) ([]byte, error)

	// Decrypt transforms an inbound payload. It inverts Encrypt.
	Decrypt(data []byte) ([]byte, error)

	// Established reports whether the handshake has completed.
	Established() bool
}

// Config selects a scheme and carries its credentials.
type Config struct {
	Scheme Scheme `yaml:"scheme" toml:"scheme"`

	// ProofOfPossession is the Sec1 shared secret.
	ProofOfPossession string `yaml:"pop,omitempty" toml:"pop"`

	// Username and Password are the Sec2 SRP6a credentials.
	Username string `yaml:"username,omitempty" toml:"username"`
	Password string `yaml:"password,omitempty" toml:"password"`
}

// Factory builds a Security for a config.
type Factory func(cfg Config) (Security, error)

// Registry maps schemes to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Scheme]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Scheme]Factory)}
}

// DefaultRegistry returns a registry holding Sec0 only.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Scheme0, func(Config) (Security, error) { return NewSec0(), nil })
	return r
}

// Register installs f for scheme, replacing any previous factory.
func (r *Registry) Register(scheme Scheme, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[scheme] = f
}

// New builds a Security for cfg. Schemes other than Sec0 are wrapped so
// Encrypt and Decrypt fail with ErrNotEstablished until the handshake
// completes.
func (r *Registry) New(cfg Config) (Security, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Scheme]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, cfg.Scheme)
	}

	s, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s session: %w", cfg.Scheme, err)
	}
	if cfg.Scheme == Scheme0 {
		return s, nil
	}
	return Guard(s), nil
}

// Schemes lists the registered schemes in ascending order.
func (r *Registry) Schemes() []Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Scheme, 0, len(r.factories))
	for s := range r.factories {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Guard wraps s so payload transforms require an established session.
func Guard(s Security) Security {
	if g, ok := s.(*guarded); ok {
		return g
	}
	return &guarded{Security: s}
}

type guarded struct {
	Security
}

func (g *guarded) Encrypt(data []byte) ([]byte, error) {
	if !g.Established() {
		return nil, ErrNotEstablished
	}
	return g.Security.Encrypt(data)
}

func (g *guarded) Decrypt(data []byte) ([]byte, error) {
	if !g.Established() {
		return nil, ErrNotEstablished
	}
	return g.Security.Decrypt(data)
}
