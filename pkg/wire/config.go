package wire

import "google.golang.org/protobuf/encoding/protowire"

// WiFiConfigPayload field numbers.
const (
	fieldConfigMsg           protowire.Number = 1
	fieldConfigCmdGetStatus  protowire.Number = 10
	fieldConfigRespGetStatus protowire.Number = 11
	fieldConfigCmdSetConfig  protowire.Number = 12
	fieldConfigRespSetConfig protowire.Number = 13
	fieldConfigCmdApply      protowire.Number = 14
	fieldConfigRespApply     protowire.Number = 15

	fieldRespStatus protowire.Number = 1

	fieldGetStatusStaState   protowire.Number = 2
	fieldGetStatusFailReason protowire.Number = 10
	fieldGetStatusConnected  protowire.Number = 11

	fieldConnectedIP4     protowire.Number = 1
	fieldConnectedAuth    protowire.Number = 2
	fieldConnectedSSID    protowire.Number = 3
	fieldConnectedBSSID   protowire.Number = 4
	fieldConnectedChannel protowire.Number = 5

	fieldSetConfigSSID       protowire.Number = 1
	fieldSetConfigPassphrase protowire.Number = 2
	fieldSetConfigBSSID      protowire.Number = 3
	fieldSetConfigChannel    protowire.Number = 4
)

// ConfigPayload is the message exchanged on prov-config.
// Exactly one of the command or response fields is set, matching Msg.
type ConfigPayload struct {
	Msg ConfigMsgType

	GetStatusCmd  bool
	GetStatusResp *GetStatusResponse
	SetConfigCmd  *SetConfigCmd
	SetConfigResp *StatusResponse
	ApplyCmd      bool
	ApplyResp     *StatusResponse
}

// SetConfigCmd carries the station credentials.
type SetConfigCmd struct {
	SSID       string
	Passphrase string
	BSSID      []byte
	Channel    int32
}

// StatusResponse is a response that carries only a status.
type StatusResponse struct {
	Status Status
}

// GetStatusResponse is the raw station status response.
type GetStatusResponse struct {
	Status     Status
	StaState   StationState
	FailReason *FailReason
	Connected  *ConnectedState
}

// ConnectedState describes the access point the device joined.
type ConnectedState struct {
	IPv4Addr string
	Auth     AuthMode
	SSID     []byte
	BSSID    []byte
	Channel  int32
}

// EncodeConfigPayload encodes a config message.
func EncodeConfigPayload(p *ConfigPayload) []byte {
	var e encoder
	e.varint(fieldConfigMsg, uint64(p.Msg))

	switch p.Msg {
	case ConfigCmdGetStatus:
		e.message(fieldConfigCmdGetStatus, nil)
	case ConfigRespGetStatus:
		var s encoder
		if r := p.GetStatusResp; r != nil {
			s.varint(fieldRespStatus, uint64(r.Status))
			s.varint(fieldGetStatusStaState, uint64(r.StaState))
			switch {
			case r.FailReason != nil:
				// oneof members are emitted even at their zero value
				s.b = protowire.AppendTag(s.b, fieldGetStatusFailReason, protowire.VarintType)
				s.b = protowire.AppendVarint(s.b, uint64(*r.FailReason))
			case r.Connected != nil:
				s.message(fieldGetStatusConnected, encodeConnected(r.Connected))
			}
		}
		e.message(fieldConfigRespGetStatus, s.b)
	case ConfigCmdSetConfig:
		var s encoder
		if c := p.SetConfigCmd; c != nil {
			s.string(fieldSetConfigSSID, c.SSID)
			s.string(fieldSetConfigPassphrase, c.Passphrase)
			s.bytes(fieldSetConfigBSSID, c.BSSID)
			s.int32(fieldSetConfigChannel, c.Channel)
		}
		e.message(fieldConfigCmdSetConfig, s.b)
	case ConfigRespSetConfig:
		e.message(fieldConfigRespSetConfig, encodeStatusResponse(p.SetConfigResp))
	case ConfigCmdApply:
		e.message(fieldConfigCmdApply, nil)
	case ConfigRespApply:
		e.message(fieldConfigRespApply, encodeStatusResponse(p.ApplyResp))
	}
	return e.b
}

func encodeStatusResponse(r *StatusResponse) []byte {
	var e encoder
	if r != nil {
		e.varint(fieldRespStatus, uint64(r.Status))
	}
	return e.b
}

func encodeConnected(c *ConnectedState) []byte {
	var e encoder
	e.string(fieldConnectedIP4, c.IPv4Addr)
	e.varint(fieldConnectedAuth, uint64(c.Auth))
	e.bytes(fieldConnectedSSID, c.SSID)
	e.bytes(fieldConnectedBSSID, c.BSSID)
	e.int32(fieldConnectedChannel, c.Channel)
	return e.b
}

// DecodeConfigPayload decodes a config message.
func DecodeConfigPayload(data []byte) (*ConfigPayload, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}

	p := &ConfigPayload{}
	for _, f := range fields {
		if f.num == fieldConfigMsg {
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			p.Msg = ConfigMsgType(v)
			continue
		}

		switch f.num {
		case fieldConfigCmdGetStatus, fieldConfigRespGetStatus, fieldConfigCmdSetConfig,
			fieldConfigRespSetConfig, fieldConfigCmdApply, fieldConfigRespApply:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
		default:
			continue
		}

		switch f.num {
		case fieldConfigCmdGetStatus:
			p.GetStatusCmd = true
		case fieldConfigRespGetStatus:
			r, err := decodeGetStatus(f.bytes)
			if err != nil {
				return nil, err
			}
			p.GetStatusResp = r
		case fieldConfigCmdSetConfig:
			c, err := decodeSetConfig(f.bytes)
			if err != nil {
				return nil, err
			}
			p.SetConfigCmd = c
		case fieldConfigRespSetConfig:
			r, err := decodeStatusResponse(f.bytes)
			if err != nil {
				return nil, err
			}
			p.SetConfigResp = r
		case fieldConfigCmdApply:
			p.ApplyCmd = true
		case fieldConfigRespApply:
			r, err := decodeStatusResponse(f.bytes)
			if err != nil {
				return nil, err
			}
			p.ApplyResp = r
		}
	}
	return p, nil
}

func decodeStatusResponse(data []byte) (*StatusResponse, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	r := &StatusResponse{}
	for _, f := range fields {
		if f.num == fieldRespStatus {
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			r.Status = Status(v)
		}
	}
	return r, nil
}

func decodeGetStatus(data []byte) (*GetStatusResponse, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	r := &GetStatusResponse{}
	for _, f := range fields {
		switch f.num {
		case fieldRespStatus:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			r.Status = Status(v)
		case fieldGetStatusStaState:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			r.StaState = StationState(v)
		case fieldGetStatusFailReason:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			reason := FailReason(v)
			r.FailReason = &reason
			r.Connected = nil
		case fieldGetStatusConnected:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c, err := decodeConnected(f.bytes)
			if err != nil {
				return nil, err
			}
			r.Connected = c
			r.FailReason = nil
		}
	}
	return r, nil
}

func decodeConnected(data []byte) (*ConnectedState, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	c := &ConnectedState{}
	for _, f := range fields {
		switch f.num {
		case fieldConnectedIP4:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.IPv4Addr = string(f.bytes)
		case fieldConnectedAuth:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			c.Auth = AuthMode(v)
		case fieldConnectedSSID:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.SSID = append([]byte{}, f.bytes...)
		case fieldConnectedBSSID:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.BSSID = append([]byte{}, f.bytes...)
		case fieldConnectedChannel:
			if err := wantVarint(f); err != nil {
				return nil, err
			}
			c.Channel = int32(f.varint)
		}
	}
	return c, nil
}

func decodeSetConfig(data []byte) (*SetConfigCmd, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	c := &SetConfigCmd{}
	for _, f := range fields {
		switch f.num {
		case fieldSetConfigSSID:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.SSID = string(f.bytes)
		case fieldSetConfigPassphrase:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.Passphrase = string(f.bytes)
		case fieldSetConfigBSSID:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			c.BSSID = append([]byte{}, f.bytes...)
		case fieldSetConfigChannel:
			if err := wantVarint(f); err != nil {
				return nil, err
			}
			c.Channel = int32(f.varint)
		}
	}
	return c, nil
}

// EncodeGetStatus encodes a station status request.
func EncodeGetStatus() []byte {
	return EncodeConfigPayload(&ConfigPayload{Msg: ConfigCmdGetStatus, GetStatusCmd: true})
}

// DecodeGetStatusResponse decodes a station status response and checks
// that the optional parts agree with the reported state.
func DecodeGetStatusResponse(data []byte) (*WiFiStatus, error) {
	p, err := decodeConfigResponse(data, ConfigRespGetStatus)
	if err != nil {
		return nil, err
	}
	r := p.GetStatusResp
	if r == nil {
		return nil, invalidf("get status response has no payload")
	}
	if err := checkStatus("get status", r.Status); err != nil {
		return nil, err
	}

	status := &WiFiStatus{State: r.StaState}
	switch r.StaState {
	case StationFailed:
		if r.FailReason == nil {
			return nil, invalidf("failed station state without a reason")
		}
		if !r.FailReason.Valid() {
			return nil, invalidf("unknown fail reason %d", *r.FailReason)
		}
		reason := *r.FailReason
		status.FailReason = &reason
	case StationConnected:
		if r.Connected == nil {
			return nil, invalidf("connected station state without connection details")
		}
		if !r.Connected.Auth.Valid() {
			return nil, invalidf("unknown auth mode %d", r.Connected.Auth)
		}
		status.Connected = &WiFiAP{
			SSID:    string(r.Connected.SSID),
			Auth:    r.Connected.Auth,
			BSSID:   formatBSSID(r.Connected.BSSID),
			Channel: uint32(r.Connected.Channel),
		}
		status.IPv4Addr = r.Connected.IPv4Addr
	case StationConnecting, StationDisconnected:
	default:
		return nil, invalidf("unknown station state %d", r.StaState)
	}
	return status, nil
}

// EncodeSetConfig encodes a set-config command.
func EncodeSetConfig(ssid, passphrase string) []byte {
	return EncodeConfigPayload(&ConfigPayload{
		Msg:          ConfigCmdSetConfig,
		SetConfigCmd: &SetConfigCmd{SSID: ssid, Passphrase: passphrase},
	})
}

// DecodeSetConfigResponse checks a set-config response.
func DecodeSetConfigResponse(data []byte) error {
	p, err := decodeConfigResponse(data, ConfigRespSetConfig)
	if err != nil {
		return err
	}
	if p.SetConfigResp == nil {
		return invalidf("set config response has no payload")
	}
	return checkStatus("set config", p.SetConfigResp.Status)
}

// EncodeApplyConfig encodes an apply-config command.
func EncodeApplyConfig() []byte {
	return EncodeConfigPayload(&ConfigPayload{Msg: ConfigCmdApply, ApplyCmd: true})
}

// DecodeApplyConfigResponse checks an apply-config response.
func DecodeApplyConfigResponse(data []byte) error {
	p, err := decodeConfigResponse(data, ConfigRespApply)
	if err != nil {
		return err
	}
	if p.ApplyResp == nil {
		return invalidf("apply config response has no payload")
	}
	return checkStatus("apply config", p.ApplyResp.Status)
}

func decodeConfigResponse(data []byte, want ConfigMsgType) (*ConfigPayload, error) {
	p, err := DecodeConfigPayload(data)
	if err != nil {
		return nil, err
	}
	if p.Msg != want {
		return nil, invalidf("expected %s, got %s", want, p.Msg)
	}
	return p, nil
}
