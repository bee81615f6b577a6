package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// softAPDevice serves the provisioning endpoints over HTTP.
type softAPDevice struct {
	mu          sync.Mutex
	aps         []wire.WiFiAP
	rejectApply bool
	creds       *wire.SetConfigCmd
	applied     bool
}

func newSoftAPDevice(t *testing.T) (*softAPDevice, *httptest.Server) {
	t.Helper()
	d := &softAPDevice{
		aps: []wire.WiFiAP{
			{SSID: "HomeNet", RSSI: -42, Auth: wire.AuthWPA2PSK, BSSID: "aabbccddeeff", Channel: 6},
		},
	}
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	return d, srv
}

func (d *softAPDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ep := transport.Endpoint(strings.TrimPrefix(r.URL.Path, "/"))
	body, _ := io.ReadAll(r.Body)
	if r.Method == http.MethodGet && ep != transport.EndpointVersion {
		http.NotFound(w, r)
		return
	}

	var resp []byte
	switch ep {
	case transport.EndpointVersion:
		resp = []byte(`{"prov":{"ver":"v1.1","sec_ver":0,"cap":["wifi_scan","no_sec"]}}`)
	case transport.EndpointSession:
		if _, err := wire.DecodeSessionData(body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp = wire.EncodeSessionData(&wire.SessionData{
			SecVer: wire.SecScheme0,
			Sec0: &wire.Sec0Payload{
				Msg:      wire.Sec0SessionResponse,
				Response: &wire.Sec0Response{Status: wire.StatusSuccess},
			},
		})
	case transport.EndpointScan:
		p, err := wire.DecodeScanPayload(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp = d.scan(p)
	case transport.EndpointConfig:
		p, err := wire.DecodeConfigPayload(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp = d.config(p)
	default:
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(resp)
}

func (d *softAPDevice) scan(p *wire.ScanPayload) []byte {
	switch p.Msg {
	case wire.ScanCmdStart:
		return wire.EncodeScanPayload(&wire.ScanPayload{Msg: wire.ScanRespStart, StartResp: true})
	case wire.ScanCmdStatus:
		return wire.EncodeScanPayload(&wire.ScanPayload{
			Msg:        wire.ScanRespStatus,
			StatusResp: &wire.ScanStatus{Finished: true, Count: uint32(len(d.aps))},
		})
	default:
		start := int(p.ResultCmd.StartIndex)
		end := min(start+int(p.ResultCmd.Count), len(d.aps))
		return wire.EncodeScanPayload(&wire.ScanPayload{Msg: wire.ScanRespResult, ResultResp: d.aps[start:end]})
	}
}

func (d *softAPDevice) config(p *wire.ConfigPayload) []byte {
	switch p.Msg {
	case wire.ConfigCmdSetConfig:
		d.creds = p.SetConfigCmd
		return wire.EncodeConfigPayload(&wire.ConfigPayload{
			Msg:           wire.ConfigRespSetConfig,
			SetConfigResp: &wire.StatusResponse{Status: wire.StatusSuccess},
		})
	case wire.ConfigCmdApply:
		status := wire.StatusSuccess
		if d.rejectApply {
			status = wire.StatusInternalError
		} else {
			d.applied = true
		}
		return wire.EncodeConfigPayload(&wire.ConfigPayload{
			Msg:       wire.ConfigRespApply,
			ApplyResp: &wire.StatusResponse{Status: status},
		})
	default:
		r := &wire.GetStatusResponse{StaState: wire.StationDisconnected}
		if d.applied {
			r = &wire.GetStatusResponse{
				StaState: wire.StationConnected,
				Connected: &wire.ConnectedState{
					IPv4Addr: "192.168.1.50",
					Auth:     wire.AuthWPA2PSK,
					SSID:     []byte(d.creds.SSID),
					BSSID:    []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff},
					Channel:  6,
				},
			}
		}
		return wire.EncodeConfigPayload(&wire.ConfigPayload{Msg: wire.ConfigRespGetStatus, GetStatusResp: r})
	}
}

func (d *softAPDevice) credentials() *wire.SetConfigCmd {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.creds
}
