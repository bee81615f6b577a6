package device

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// fakeESP answers provisioning requests the way device firmware does.
type fakeESP struct {
	mu      sync.Mutex
	aps     []wire.WiFiAP
	creds   *wire.SetConfigCmd
	applied bool
	calls   []string
}

func (f *fakeESP) handle(ep string, req []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ep)

	switch transport.Endpoint(ep) {
	case transport.EndpointVersion:
		return []byte(`{"prov":{"ver":"v1.1","sec_ver":0,"cap":["wifi_scan","no_sec"]}}`), nil

	case transport.EndpointSession:
		if _, err := wire.DecodeSessionData(req); err != nil {
			return nil, err
		}
		return sessionReply(wire.StatusSuccess), nil

	case transport.EndpointScan:
		p, err := wire.DecodeScanPayload(req)
		if err != nil {
			return nil, err
		}
		switch p.Msg {
		case wire.ScanCmdStart:
			return scanStartReply(wire.StatusSuccess), nil
		case wire.ScanCmdStatus:
			return scanStatusReply(true, uint32(len(f.aps))), nil
		case wire.ScanCmdResult:
			start := int(p.ResultCmd.StartIndex)
			end := min(start+int(p.ResultCmd.Count), len(f.aps))
			return scanResultReply(f.aps[start:end]...), nil
		}

	case transport.EndpointConfig:
		p, err := wire.DecodeConfigPayload(req)
		if err != nil {
			return nil, err
		}
		switch p.Msg {
		case wire.ConfigCmdSetConfig:
			f.creds = p.SetConfigCmd
			return setConfigReply(wire.StatusSuccess), nil
		case wire.ConfigCmdApply:
			if f.creds == nil {
				return applyReply(wire.StatusInvalidArgument), nil
			}
			f.applied = true
			return applyReply(wire.StatusSuccess), nil
		case wire.ConfigCmdGetStatus:
			if !f.applied {
				return getStatusReply(&wire.GetStatusResponse{StaState: wire.StationDisconnected}), nil
			}
			return getStatusReply(&wire.GetStatusResponse{
				StaState: wire.StationConnected,
				Connected: &wire.ConnectedState{
					IPv4Addr: "192.168.1.50",
					Auth:     wire.AuthWPA2PSK,
					SSID:     []byte(f.creds.SSID),
				},
			}), nil
		}
	}
	return nil, fmt.Errorf("unhandled request on %s", ep)
}

func (f *fakeESP) endpointCalls(ep transport.Endpoint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == string(ep) {
			n++
		}
	}
	return n
}

// ServeHTTP exposes the fake over the SoftAP HTTP binding.
func (f *fakeESP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep := strings.TrimPrefix(r.URL.Path, "/")
	body, _ := io.ReadAll(r.Body)
	if r.Method == http.MethodGet && ep != string(transport.EndpointVersion) {
		http.NotFound(w, r)
		return
	}
	resp, err := f.handle(ep, body)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(resp)
}

// GATT binding. Each dial exposes the endpoints under fresh characteristic
// UUIDs so stale handles would hit the wrong characteristic.

type gattDescriptor struct{ value []byte }

func (d gattDescriptor) UUID() string          { return "2901" }
func (d gattDescriptor) Read() ([]byte, error) { return d.value, nil }

type gattChar struct {
	uuid   string
	label  string
	esp    *fakeESP
	periph *gattPeriph

	last []byte
}

func (c *gattChar) UUID() string { return c.uuid }

func (c *gattChar) Descriptors() ([]transport.Descriptor, error) {
	return []transport.Descriptor{gattDescriptor{value: []byte(c.label)}}, nil
}

func (c *gattChar) Write(v []byte) error {
	if c.periph.closed {
		return fmt.Errorf("write on closed link")
	}
	c.last = v
	return nil
}

func (c *gattChar) Read() ([]byte, error) {
	if c.periph.closed {
		return nil, fmt.Errorf("read on closed link")
	}
	return c.esp.handle(c.label, c.last)
}

type gattPeriph struct {
	chars  []transport.Characteristic
	closed bool
}

func (p *gattPeriph) Characteristics(string) ([]transport.Characteristic, error) {
	return p.chars, nil
}

func (p *gattPeriph) Connected() bool { return !p.closed }

func (p *gattPeriph) Close() error {
	p.closed = true
	return nil
}

type gattDialer struct {
	esp     *fakeESP
	periphs []*gattPeriph
}

func (d *gattDialer) Dial(context.Context, string) (transport.Peripheral, error) {
	p := &gattPeriph{}
	base := 0xff50 + 0x10*len(d.periphs)
	for i, ep := range []transport.Endpoint{
		transport.EndpointSession, transport.EndpointScan, transport.EndpointConfig, transport.EndpointVersion,
	} {
		p.chars = append(p.chars, &gattChar{
			uuid:   fmt.Sprintf("%04x", base+i),
			label:  string(ep),
			esp:    d.esp,
			periph: p,
		})
	}
	d.periphs = append(d.periphs, p)
	return p, nil
}
