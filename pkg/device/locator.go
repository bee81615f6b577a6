package device

import (
	"fmt"
	"net/url"

	"github.com/espprov/espprov-go/pkg/transport"
)

// Locator identifies how to reach a device: a radio address for BLE or a
// base URL for SoftAP. Exactly one of Address and BaseURL is set.
type Locator struct {
	// Address is the BLE peripheral address.
	Address string

	// BaseURL is the device's HTTP root on the local network.
	BaseURL *url.URL

	// Name is the advertised name, if known.
	Name string
}

// RadioLocator locates a device by BLE address.
func RadioLocator(addr string) Locator {
	return Locator{Address: addr}
}

// NetworkLocator locates a device by its HTTP base URL.
func NetworkLocator(base *url.URL) Locator {
	return Locator{BaseURL: base}
}

// ParseNetworkLocator parses raw as a base URL.
func ParseNetworkLocator(raw string) (Locator, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return Locator{}, fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidLocator, raw)
	}
	return NetworkLocator(u), nil
}

// Kind returns transport.KindBLE or transport.KindSoftAP, or "" for an
// empty locator.
func (l Locator) Kind() string {
	switch {
	case l.BaseURL != nil:
		return transport.KindSoftAP
	case l.Address != "":
		return transport.KindBLE
	default:
		return ""
	}
}

func (l Locator) validate() error {
	if l.BaseURL != nil && l.Address != "" {
		return fmt.Errorf("%w: both address and base URL set", ErrInvalidLocator)
	}
	if l.Kind() == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLocator)
	}
	return nil
}

// String returns the address or URL, prefixed by the name when known.
func (l Locator) String() string {
	var target string
	if l.BaseURL != nil {
		target = l.BaseURL.String()
	} else {
		target = l.Address
	}
	if l.Name != "" {
		return l.Name + " (" + target + ")"
	}
	return target
}
