package transport

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// bluetoothBaseSuffix completes 16- and 32-bit Bluetooth UUID aliases.
const bluetoothBaseSuffix = "-0000-1000-8000-00805f9b34fb"

// UserDescriptionUUID is the GATT Characteristic User Description descriptor.
const UserDescriptionUUID = "2901"

// NormalizeUUID returns the canonical lower-case 128-bit form of a GATT UUID.
// It accepts 16-bit ("ff51", "0xFF51") and 32-bit aliases as well as full
// UUIDs with or without dashes.
func NormalizeUUID(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "0x")
	switch len(v) {
	case 4:
		v = "0000" + v + bluetoothBaseSuffix
	case 8:
		v += bluetoothBaseSuffix
	}
	u, err := uuid.Parse(v)
	if err != nil {
		return "", fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return u.String(), nil
}

// SameUUID reports whether a and b name the same GATT UUID.
func SameUUID(a, b string) bool {
	na, err := NormalizeUUID(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeUUID(b)
	if err != nil {
		return false
	}
	return na == nb
}
