package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/espprov/espprov-go/pkg/log"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// Capabilities advertised in the proto-ver reply.
const (
	CapWiFiScan = "wifi_scan"
	CapNoPoP    = "no_pop"
	CapNoSec    = "no_sec"
)

// versionProbe is the request body sent to proto-ver. The device ignores it.
var versionProbe = []byte("---")

// ProtoVersion is the provisioning service description a device returns on
// proto-ver.
type ProtoVersion struct {
	Version      string   `json:"ver" yaml:"ver"`
	SecVer       *int     `json:"sec_ver,omitempty" yaml:"sec_ver,omitempty"`
	SecPatchVer  int      `json:"sec_patch_ver,omitempty" yaml:"sec_patch_ver,omitempty"`
	Capabilities []string `json:"cap,omitempty" yaml:"cap,omitempty"`
}

// HasCapability reports whether the device advertised c.
func (v *ProtoVersion) HasCapability(c string) bool {
	return slices.Contains(v.Capabilities, c)
}

// Scheme returns the advertised security scheme. Devices that omit sec_ver
// predate scheme negotiation and report false.
func (v *ProtoVersion) Scheme() (security.Scheme, bool) {
	if v.SecVer == nil || *v.SecVer < 0 || *v.SecVer > int(security.Scheme2) {
		return 0, false
	}
	return security.Scheme(*v.SecVer), true
}

// ProtoVersion queries proto-ver. The endpoint is never encrypted, so this
// works in any bound state including before a handshake.
func (d *Device) ProtoVersion(ctx context.Context) (*ProtoVersion, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireLocked(opVersion); err != nil {
		return nil, err
	}

	d.logMessage(transport.EndpointVersion, log.MessageTypeRequest, "PROTO_VER", nil, nil)
	resp, err := d.tr.SendData(ctx, transport.EndpointVersion, versionProbe)
	if err != nil {
		return nil, opError(opVersion, "", err)
	}
	v, err := ParseProtoVersion(resp)
	if err != nil {
		return nil, opError(opVersion, "", err)
	}
	return v, nil
}

// ParseProtoVersion parses a proto-ver reply. Firmware that answers with a
// bare version string yields a ProtoVersion with only Version set.
func ParseProtoVersion(data []byte) (*ProtoVersion, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty version reply", wire.ErrInvalidMessage)
	}
	if data[0] != '{' {
		return &ProtoVersion{Version: strings.TrimSpace(string(data))}, nil
	}

	var doc struct {
		Prov *ProtoVersion `json:"prov"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: version reply: %w", wire.ErrInvalidMessage, err)
	}
	if doc.Prov == nil {
		return nil, fmt.Errorf("%w: version reply has no prov object", wire.ErrInvalidMessage)
	}
	return doc.Prov, nil
}
