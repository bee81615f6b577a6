package wire

import (
	"bytes"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeSetConfig(t *testing.T) {
	got := EncodeSetConfig("home", "secret")

	want := []byte{
		0x08, 0x02, // msg=CmdSetConfig
		0x62, 0x0e, // cmd_set_config
		0x0a, 0x04, 'h', 'o', 'm', 'e',
		0x12, 0x06, 's', 'e', 'c', 'r', 'e', 't',
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeSetConfig = %x, want %x", got, want)
	}

	p, err := DecodeConfigPayload(got)
	if err != nil {
		t.Fatalf("DecodeConfigPayload failed: %v", err)
	}
	if p.SetConfigCmd == nil || p.SetConfigCmd.SSID != "home" || p.SetConfigCmd.Passphrase != "secret" {
		t.Errorf("SetConfigCmd = %+v", p.SetConfigCmd)
	}
}

func TestEncodeConfigCommands(t *testing.T) {
	if got, want := EncodeGetStatus(), []byte{0x52, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("EncodeGetStatus = %x, want %x", got, want)
	}
	if got, want := EncodeApplyConfig(), []byte{0x08, 0x04, 0x72, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("EncodeApplyConfig = %x, want %x", got, want)
	}
}

func TestDecodeSetAndApplyResponses(t *testing.T) {
	okSet := EncodeConfigPayload(&ConfigPayload{Msg: ConfigRespSetConfig, SetConfigResp: &StatusResponse{}})
	if err := DecodeSetConfigResponse(okSet); err != nil {
		t.Errorf("set config success: %v", err)
	}

	badApply := EncodeConfigPayload(&ConfigPayload{
		Msg:       ConfigRespApply,
		ApplyResp: &StatusResponse{Status: StatusInternalError},
	})
	err := DecodeApplyConfigResponse(badApply)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("apply failure: err = %v, want *StatusError", err)
	}
	if se.Request != "apply config" || se.Status != StatusInternalError {
		t.Errorf("StatusError = %+v", se)
	}

	if err := DecodeApplyConfigResponse(okSet); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("mismatched type: err = %v, want ErrInvalidMessage", err)
	}
}

func failReason(r FailReason) *FailReason { return &r }

func TestDecodeGetStatusResponse(t *testing.T) {
	connected := &ConnectedState{
		IPv4Addr: "192.168.1.23",
		Auth:     AuthWPA2PSK,
		SSID:     []byte("home"),
		BSSID:    []byte{0xa0, 0xb1, 0xc2, 0xd3, 0xe4, 0xf5},
		Channel:  6,
	}

	tests := []struct {
		name    string
		resp    *GetStatusResponse
		check   func(t *testing.T, s *WiFiStatus)
		wantErr error
	}{
		{
			name: "connected",
			resp: &GetStatusResponse{StaState: StationConnected, Connected: connected},
			check: func(t *testing.T, s *WiFiStatus) {
				if s.FailReason != nil {
					t.Errorf("FailReason set for connected state")
				}
				if s.Connected == nil {
					t.Fatalf("Connected missing")
				}
				want := WiFiAP{SSID: "home", Auth: AuthWPA2PSK, BSSID: "a0b1c2d3e4f5", Channel: 6}
				if *s.Connected != want {
					t.Errorf("Connected = %+v, want %+v", *s.Connected, want)
				}
				if s.IPv4Addr != "192.168.1.23" {
					t.Errorf("IPv4Addr = %q", s.IPv4Addr)
				}
			},
		},
		{
			name: "failed with auth error",
			resp: &GetStatusResponse{StaState: StationFailed, FailReason: failReason(FailAuthError)},
			check: func(t *testing.T, s *WiFiStatus) {
				if s.FailReason == nil || *s.FailReason != FailAuthError {
					t.Errorf("FailReason = %v, want %v", s.FailReason, FailAuthError)
				}
				if s.Connected != nil {
					t.Errorf("Connected set for failed state")
				}
			},
		},
		{
			name: "failed network not found",
			resp: &GetStatusResponse{StaState: StationFailed, FailReason: failReason(FailNetworkNotFound)},
			check: func(t *testing.T, s *WiFiStatus) {
				if s.FailReason == nil || *s.FailReason != FailNetworkNotFound {
					t.Errorf("FailReason = %v, want %v", s.FailReason, FailNetworkNotFound)
				}
			},
		},
		{
			name: "connecting",
			resp: &GetStatusResponse{StaState: StationConnecting},
			check: func(t *testing.T, s *WiFiStatus) {
				if s.FailReason != nil || s.Connected != nil {
					t.Errorf("unexpected optional fields: %+v", s)
				}
			},
		},
		{
			name: "disconnected ignores stray reason",
			resp: &GetStatusResponse{StaState: StationDisconnected, FailReason: failReason(FailAuthError)},
			check: func(t *testing.T, s *WiFiStatus) {
				if s.FailReason != nil || s.Connected != nil {
					t.Errorf("unexpected optional fields: %+v", s)
				}
			},
		},
		{
			name:    "failed without reason",
			resp:    &GetStatusResponse{StaState: StationFailed},
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "connected without record",
			resp:    &GetStatusResponse{StaState: StationConnected},
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "failed with unknown reason",
			resp:    &GetStatusResponse{StaState: StationFailed, FailReason: failReason(FailReason(9))},
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "unknown state",
			resp:    &GetStatusResponse{StaState: StationState(9)},
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "status failure",
			resp:    &GetStatusResponse{Status: StatusInvalidSession},
			wantErr: ErrStatusFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := EncodeConfigPayload(&ConfigPayload{Msg: ConfigRespGetStatus, GetStatusResp: tt.resp})
			s, err := DecodeGetStatusResponse(data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeGetStatusResponse failed: %v", err)
			}
			if s.State != tt.resp.StaState {
				t.Errorf("State = %v, want %v", s.State, tt.resp.StaState)
			}
			tt.check(t, s)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	if got := AuthWPA2WPA3PSK.String(); got != "WPA2_WPA3_PSK" {
		t.Errorf("AuthWPA2WPA3PSK.String() = %q", got)
	}
	if got := AuthMode(8).String(); got != "UNKNOWN(8)" {
		t.Errorf("AuthMode(8).String() = %q", got)
	}
	if AuthMode(8).Valid() {
		t.Errorf("AuthMode(8).Valid() = true")
	}
	if got := StationConnecting.String(); got != "CONNECTING" {
		t.Errorf("StationConnecting.String() = %q", got)
	}
}

func TestDecodeConfigRejectsOversizedEnums(t *testing.T) {
	configResp := func(msg ConfigMsgType, num protowire.Number, inner *encoder) []byte {
		e := &encoder{}
		e.varint(fieldConfigMsg, uint64(msg))
		e.message(num, inner.b)
		return e.b
	}

	// 261 would truncate to INTERNAL_ERROR and 256 to SUCCESS.
	apply := &encoder{}
	apply.varint(fieldRespStatus, 261)
	err := DecodeApplyConfigResponse(configResp(ConfigRespApply, fieldConfigRespApply, apply))
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("apply status 261: err = %v, want ErrInvalidMessage", err)
	}

	set := &encoder{}
	set.varint(fieldRespStatus, 256)
	err = DecodeSetConfigResponse(configResp(ConfigRespSetConfig, fieldConfigRespSetConfig, set))
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("set status 256: err = %v, want ErrInvalidMessage", err)
	}

	// 256 would truncate to Connected.
	status := &encoder{}
	status.varint(fieldGetStatusStaState, 256)
	_, err = DecodeGetStatusResponse(configResp(ConfigRespGetStatus, fieldConfigRespGetStatus, status))
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("sta_state 256: err = %v, want ErrInvalidMessage", err)
	}
}
