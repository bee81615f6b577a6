package discovery

import "strings"

// TXT record keys understood in provisioning announcements.
const (
	TXTKeyScheme  = "scheme"  // "http" (default) or "https"
	TXTKeyVersion = "ver"     // provisioning protocol version
	TXTKeySecVer  = "sec_ver" // security scheme number
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// StringsToTXTRecords parses "key=value" strings. Keys without a value map
// to the empty string.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			txt[parts[0]] = ""
		}
	}
	return txt
}
