package wire

import "encoding/hex"

// WiFiAP describes one access point seen by the device.
type WiFiAP struct {
	SSID    string   `json:"ssid" yaml:"ssid"`
	RSSI    int32    `json:"rssi" yaml:"rssi"`
	Auth    AuthMode `json:"auth" yaml:"auth"`
	BSSID   string   `json:"bssid" yaml:"bssid"` // lower-case hex, no separators
	Channel uint32   `json:"channel" yaml:"channel"`
}

// WiFiStatus is the device's station status.
//
// FailReason is set only when State is StationFailed. Connected is set only
// when State is StationConnected.
type WiFiStatus struct {
	State      StationState `json:"state" yaml:"state"`
	FailReason *FailReason  `json:"fail_reason,omitempty" yaml:"fail_reason,omitempty"`
	Connected  *WiFiAP      `json:"connected,omitempty" yaml:"connected,omitempty"`

	// IPv4Addr is the address the device obtained, when connected.
	IPv4Addr string `json:"ipv4_addr,omitempty" yaml:"ipv4_addr,omitempty"`
}

// ScanStatus is the result of one scan status poll.
type ScanStatus struct {
	Finished bool
	Count    uint32
}

// ScanParams configures a scan start command.
type ScanParams struct {
	Blocking      bool
	Passive       bool
	GroupChannels uint32
	PeriodMs      uint32
}

// DefaultScanParams returns a blocking active scan over groups of 5
// channels, dwelling 120ms on each.
func DefaultScanParams() ScanParams {
	return ScanParams{
		Blocking:      true,
		Passive:       false,
		GroupChannels: 5,
		PeriodMs:      120,
	}
}

func formatBSSID(b []byte) string {
	return hex.EncodeToString(b)
}

func parseBSSID(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
