package discovery

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/espprov/espprov-go/pkg/device"
)

// Discovery defaults.
const (
	// DefaultNamePrefix is the advertised name prefix of unprovisioned
	// devices.
	DefaultNamePrefix = "PROV_"

	// DefaultMDNSService is the DNS-SD service type browsed by default.
	DefaultMDNSService = "_esp_wifi_prov._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// ScanTimeout bounds a BLE scan when the context has no deadline.
	ScanTimeout = 5 * time.Second

	// BrowseTimeout bounds an mDNS browse when the context has no deadline.
	BrowseTimeout = 5 * time.Second
)

// Discovery errors.
var (
	ErrNoDevice      = errors.New("no device found")
	ErrInvalidQRCode = errors.New("invalid QR code")
)

// RadioDevice is a device seen in a BLE advertisement.
type RadioDevice struct {
	Address string `json:"address" yaml:"address"`
	Name    string `json:"name" yaml:"name"`
	RSSI    int    `json:"rssi" yaml:"rssi"`
}

// Locator returns the radio locator for the device.
func (r RadioDevice) Locator() device.Locator {
	loc := device.RadioLocator(r.Address)
	loc.Name = r.Name
	return loc
}

// NetworkDevice is a device found by mDNS.
type NetworkDevice struct {
	Instance  string            `json:"instance" yaml:"instance"`
	Host      string            `json:"host" yaml:"host"`
	Port      uint16            `json:"port" yaml:"port"`
	Addresses []string          `json:"addresses" yaml:"addresses"`
	Text      map[string]string `json:"txt,omitempty" yaml:"txt,omitempty"`
}

// BaseURL returns the device's HTTP root, preferring IPv4 addresses.
// It returns nil when no address is known.
func (n NetworkDevice) BaseURL() *url.URL {
	var host string
	for _, a := range n.Addresses {
		ip := net.ParseIP(a)
		if ip == nil {
			continue
		}
		if ip.To4() != nil {
			host = a
			break
		}
		if host == "" {
			host = a
		}
	}
	if host == "" {
		return nil
	}
	port := n.Port
	if port == 0 {
		port = 80
	}
	scheme := "http"
	if n.Text[TXTKeyScheme] == "https" {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: net.JoinHostPort(host, strconv.Itoa(int(port)))}
}

// Locator returns the network locator for the device, or false when the
// entry carried no address.
func (n NetworkDevice) Locator() (device.Locator, bool) {
	u := n.BaseURL()
	if u == nil {
		return device.Locator{}, false
	}
	loc := device.NetworkLocator(u)
	loc.Name = n.Instance
	return loc, true
}

// ServiceEntry is a resolved DNS-SD entry, independent of the mDNS library.
type ServiceEntry struct {
	Instance string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// toNetworkDevice converts the entry.
func (e ServiceEntry) toNetworkDevice() NetworkDevice {
	return NetworkDevice{
		Instance:  e.Instance,
		Host:      e.Host,
		Port:      e.Port,
		Addresses: append([]string(nil), e.Addrs...),
		Text:      StringsToTXTRecords(e.Text),
	}
}
