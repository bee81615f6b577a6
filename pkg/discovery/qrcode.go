package discovery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

// QRVersion is the payload version written by NewQRCode.
const QRVersion = "v1"

// QRCode is a decoded provisioning QR payload.
type QRCode struct {
	Version   string
	Name      string
	Transport string // transport.KindBLE or transport.KindSoftAP
	Security  security.Scheme

	// ProofOfPossession is the Sec1 secret.
	ProofOfPossession string

	// Username is the Sec2 user.
	Username string

	// Password is the SoftAP network passphrase.
	Password string
}

type qrPayload struct {
	Ver       string          `json:"ver"`
	Name      string          `json:"name"`
	PoP       string          `json:"pop,omitempty"`
	Transport string          `json:"transport"`
	Security  json.RawMessage `json:"security,omitempty"`
	Username  string          `json:"username,omitempty"`
	Password  string          `json:"password,omitempty"`
}

// ParseQRCode decodes a provisioning QR payload.
//
// The security level may be a number or a numeric string. A missing level
// means Sec1 when a proof of possession is present and Sec0 otherwise.
func ParseQRCode(content string) (*QRCode, error) {
	var p qrPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQRCode, err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidQRCode)
	}

	kind := strings.ToLower(p.Transport)
	switch kind {
	case transport.KindBLE, transport.KindSoftAP:
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrInvalidQRCode, p.Transport)
	}

	scheme, err := parseSecurityLevel(p.Security, p.PoP != "")
	if err != nil {
		return nil, err
	}

	return &QRCode{
		Version:           p.Ver,
		Name:              p.Name,
		Transport:         kind,
		Security:          scheme,
		ProofOfPossession: p.PoP,
		Username:          p.Username,
		Password:          p.Password,
	}, nil
}

func parseSecurityLevel(raw json.RawMessage, hasPoP bool) (security.Scheme, error) {
	if len(raw) == 0 {
		if hasPoP {
			return security.Scheme1, nil
		}
		return security.Scheme0, nil
	}
	s := strings.Trim(string(raw), `"`)
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > uint64(security.Scheme2) {
		return 0, fmt.Errorf("%w: security level %s", ErrInvalidQRCode, raw)
	}
	return security.Scheme(n), nil
}

// SecurityConfig returns the session config the payload asks for.
func (qr *QRCode) SecurityConfig() *security.Config {
	return &security.Config{
		Scheme:            qr.Security,
		ProofOfPossession: qr.ProofOfPossession,
		Username:          qr.Username,
	}
}

// String returns the payload as it is encoded in the QR code.
func (qr *QRCode) String() string {
	p := qrPayload{
		Ver:       qr.Version,
		Name:      qr.Name,
		PoP:       qr.ProofOfPossession,
		Transport: qr.Transport,
		Security:  json.RawMessage(strconv.Quote(strconv.Itoa(int(qr.Security)))),
		Username:  qr.Username,
		Password:  qr.Password,
	}
	b, _ := json.Marshal(p)
	return string(b)
}

// NewQRCode creates a payload for a device.
func NewQRCode(name, kind string, scheme security.Scheme, pop string) (*QRCode, error) {
	qr := &QRCode{Version: QRVersion, Name: name, Transport: kind, Security: scheme, ProofOfPossession: pop}
	if _, err := ParseQRCode(qr.String()); err != nil {
		return nil, err
	}
	return qr, nil
}
