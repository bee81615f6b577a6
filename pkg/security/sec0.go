package security

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/espprov/espprov-go/pkg/wire"
)

// Sec0 is the passthrough scheme. Its handshake only confirms that the
// device also runs without encryption.
type Sec0 struct {
	mu          sync.Mutex
	established bool
}

// NewSec0 returns an unestablished Sec0 session.
func NewSec0() *Sec0 {
	return &Sec0{}
}

// SessionSetupRequest returns the Sec0 session command.
func (s *Sec0) SessionSetupRequest() ([]byte, error) {
	return wire.EncodeSessionData(wire.NewSec0SessionCommand()), nil
}

// ProcessSessionSetupResponse checks that the device answered with a Sec0
// payload and a success status.
func (s *Sec0) ProcessSessionSetupResponse(resp []byte) error {
	data, err := wire.DecodeSessionData(resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if data.SecVer != Scheme0 {
		return fmt.Errorf("%w: device answered with %s", ErrHandshake, data.SecVer)
	}
	if data.Sec0 == nil {
		return fmt.Errorf("%w: reply has no sec0 payload", ErrHandshake)
	}
	if data.Sec0.Msg != wire.Sec0SessionResponse {
		return fmt.Errorf("%w: expected session response, got message type %d", ErrHandshake, data.Sec0.Msg)
	}
	if r := data.Sec0.Response; r != nil && r.Status != wire.StatusSuccess {
		return fmt.Errorf("%w: %w", ErrHandshake, &wire.StatusError{Request: "session setup", Status: r.Status})
	}

	s.mu.Lock()
	s.established = true
	s.mu.Unlock()
	return nil
}

// Encrypt returns a copy of data.
func (s *Sec0) Encrypt(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Decrypt returns a copy of data.
func (s *Sec0) Decrypt(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Established reports whether a valid session reply was processed.
func (s *Sec0) Established() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.established
}

var _ Security = (*Sec0)(nil)
