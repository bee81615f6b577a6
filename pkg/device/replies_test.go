package device

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/transport/mocks"
	"github.com/espprov/espprov-go/pkg/wire"
)

// Device replies in the device's wire format.

func sessionReply(status wire.Status) []byte {
	return wire.EncodeSessionData(&wire.SessionData{
		SecVer: wire.SecScheme0,
		Sec0: &wire.Sec0Payload{
			Msg:      wire.Sec0SessionResponse,
			Response: &wire.Sec0Response{Status: status},
		},
	})
}

func scanStartReply(status wire.Status) []byte {
	return wire.EncodeScanPayload(&wire.ScanPayload{Msg: wire.ScanRespStart, Status: status, StartResp: true})
}

func scanStatusReply(finished bool, count uint32) []byte {
	return wire.EncodeScanPayload(&wire.ScanPayload{
		Msg:        wire.ScanRespStatus,
		StatusResp: &wire.ScanStatus{Finished: finished, Count: count},
	})
}

func scanResultReply(aps ...wire.WiFiAP) []byte {
	return wire.EncodeScanPayload(&wire.ScanPayload{Msg: wire.ScanRespResult, ResultResp: aps})
}

func setConfigReply(status wire.Status) []byte {
	return wire.EncodeConfigPayload(&wire.ConfigPayload{
		Msg:           wire.ConfigRespSetConfig,
		SetConfigResp: &wire.StatusResponse{Status: status},
	})
}

func applyReply(status wire.Status) []byte {
	return wire.EncodeConfigPayload(&wire.ConfigPayload{
		Msg:       wire.ConfigRespApply,
		ApplyResp: &wire.StatusResponse{Status: status},
	})
}

func getStatusReply(r *wire.GetStatusResponse) []byte {
	return wire.EncodeConfigPayload(&wire.ConfigPayload{Msg: wire.ConfigRespGetStatus, GetStatusResp: r})
}

// mockFactory returns a transport factory that hands out the given
// transports in order and fails the test if asked for more.
func mockFactory(t *testing.T, trs ...transport.Transport) TransportFactory {
	t.Helper()
	return func(Locator, TransportConfig) (transport.Transport, error) {
		if len(trs) == 0 {
			t.Fatal("unexpected transport request")
		}
		tr := trs[0]
		trs = trs[1:]
		return tr, nil
	}
}

// connectedDevice returns a Device bound to a mock transport without a
// handshake.
func connectedDevice(t *testing.T) (*Device, *mocks.MockTransport) {
	t.Helper()
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Connect(mock.Anything).Return(nil).Once()

	d := New(RadioLocator("aa:bb:cc:dd:ee:ff"), WithTransportFactory(mockFactory(t, tr)))
	if err := d.Connect(t.Context(), nil); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return d, tr
}

var sec0Config = &security.Config{Scheme: security.Scheme0}
