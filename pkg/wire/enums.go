package wire

import "fmt"

// Status is the result code carried by every response.
type Status uint8

const (
	StatusSuccess          Status = 0
	StatusInvalidSecScheme Status = 1
	StatusInvalidProto     Status = 2
	StatusTooManySessions  Status = 3
	StatusInvalidArgument  Status = 4
	StatusInternalError    Status = 5
	StatusCryptoError      Status = 6
	StatusInvalidSession   Status = 7
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusInvalidSecScheme:
		return "INVALID_SEC_SCHEME"
	case StatusInvalidProto:
		return "INVALID_PROTO"
	case StatusTooManySessions:
		return "TOO_MANY_SESSIONS"
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	case StatusCryptoError:
		return "CRYPTO_ERROR"
	case StatusInvalidSession:
		return "INVALID_SESSION"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// SecScheme identifies the security scheme negotiated on prov-session.
type SecScheme uint8

const (
	// SecScheme0 is the unencrypted scheme.
	SecScheme0 SecScheme = 0

	// SecScheme1 uses X25519 key exchange with a proof of possession.
	SecScheme1 SecScheme = 1

	// SecScheme2 uses SRP6a with a username and password.
	SecScheme2 SecScheme = 2
)

// String returns the scheme name.
func (s SecScheme) String() string {
	switch s {
	case SecScheme0:
		return "SEC0"
	case SecScheme1:
		return "SEC1"
	case SecScheme2:
		return "SEC2"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// Sec0MsgType distinguishes the two Sec0 handshake messages.
type Sec0MsgType uint8

const (
	Sec0SessionCommand  Sec0MsgType = 0
	Sec0SessionResponse Sec0MsgType = 1
)

// ScanMsgType identifies a message on prov-scan.
type ScanMsgType uint8

const (
	ScanCmdStart   ScanMsgType = 0
	ScanRespStart  ScanMsgType = 1
	ScanCmdStatus  ScanMsgType = 2
	ScanRespStatus ScanMsgType = 3
	ScanCmdResult  ScanMsgType = 4
	ScanRespResult ScanMsgType = 5
)

// String returns the message type name.
func (t ScanMsgType) String() string {
	switch t {
	case ScanCmdStart:
		return "CMD_SCAN_START"
	case ScanRespStart:
		return "RESP_SCAN_START"
	case ScanCmdStatus:
		return "CMD_SCAN_STATUS"
	case ScanRespStatus:
		return "RESP_SCAN_STATUS"
	case ScanCmdResult:
		return "CMD_SCAN_RESULT"
	case ScanRespResult:
		return "RESP_SCAN_RESULT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ConfigMsgType identifies a message on prov-config.
type ConfigMsgType uint8

const (
	ConfigCmdGetStatus  ConfigMsgType = 0
	ConfigRespGetStatus ConfigMsgType = 1
	ConfigCmdSetConfig  ConfigMsgType = 2
	ConfigRespSetConfig ConfigMsgType = 3
	ConfigCmdApply      ConfigMsgType = 4
	ConfigRespApply     ConfigMsgType = 5
)

// String returns the message type name.
func (t ConfigMsgType) String() string {
	switch t {
	case ConfigCmdGetStatus:
		return "CMD_GET_STATUS"
	case ConfigRespGetStatus:
		return "RESP_GET_STATUS"
	case ConfigCmdSetConfig:
		return "CMD_SET_CONFIG"
	case ConfigRespSetConfig:
		return "RESP_SET_CONFIG"
	case ConfigCmdApply:
		return "CMD_APPLY_CONFIG"
	case ConfigRespApply:
		return "RESP_APPLY_CONFIG"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// AuthMode is the authentication mode of an access point.
type AuthMode uint8

const (
	AuthOpen           AuthMode = 0
	AuthWEP            AuthMode = 1
	AuthWPAPSK         AuthMode = 2
	AuthWPA2PSK        AuthMode = 3
	AuthWPAWPA2PSK     AuthMode = 4
	AuthWPA2Enterprise AuthMode = 5
	AuthWPA3PSK        AuthMode = 6
	AuthWPA2WPA3PSK    AuthMode = 7
)

// Valid reports whether m is one of the eight known modes.
func (m AuthMode) Valid() bool {
	return m <= AuthWPA2WPA3PSK
}

// String returns the auth mode name.
func (m AuthMode) String() string {
	switch m {
	case AuthOpen:
		return "OPEN"
	case AuthWEP:
		return "WEP"
	case AuthWPAPSK:
		return "WPA_PSK"
	case AuthWPA2PSK:
		return "WPA2_PSK"
	case AuthWPAWPA2PSK:
		return "WPA_WPA2_PSK"
	case AuthWPA2Enterprise:
		return "WPA2_ENTERPRISE"
	case AuthWPA3PSK:
		return "WPA3_PSK"
	case AuthWPA2WPA3PSK:
		return "WPA2_WPA3_PSK"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(m))
	}
}

// StationState is the device's WiFi client-mode state.
type StationState uint8

const (
	StationConnected    StationState = 0
	StationConnecting   StationState = 1
	StationDisconnected StationState = 2
	StationFailed       StationState = 3
)

// String returns the station state name.
func (s StationState) String() string {
	switch s {
	case StationConnected:
		return "CONNECTED"
	case StationConnecting:
		return "CONNECTING"
	case StationDisconnected:
		return "DISCONNECTED"
	case StationFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// FailReason explains a StationFailed state.
type FailReason uint8

const (
	FailAuthError       FailReason = 0
	FailNetworkNotFound FailReason = 1
)

// Valid reports whether r is a known failure reason.
func (r FailReason) Valid() bool {
	return r <= FailNetworkNotFound
}

// String returns the failure reason name.
func (r FailReason) String() string {
	switch r {
	case FailAuthError:
		return "AUTH_ERROR"
	case FailNetworkNotFound:
		return "NETWORK_NOT_FOUND"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}

// MarshalYAML writes the mode name.
func (m AuthMode) MarshalYAML() (any, error) { return m.String(), nil }

// MarshalYAML writes the state name.
func (s StationState) MarshalYAML() (any, error) { return s.String(), nil }

// MarshalYAML writes the reason name.
func (r FailReason) MarshalYAML() (any, error) { return r.String(), nil }
