package discovery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espprov/espprov-go/pkg/discovery"
)

// announce returns a BrowseFunc that resolves entries and then waits for ctx.
func announce(t *testing.T, entries ...discovery.ServiceEntry) discovery.BrowseFunc {
	return func(ctx context.Context, service, domain string, found chan<- discovery.ServiceEntry) error {
		assert.Equal(t, discovery.DefaultMDNSService, service)
		assert.Equal(t, discovery.Domain, domain)
		for _, e := range entries {
			select {
			case found <- e:
			case <-ctx.Done():
				return nil
			}
		}
		<-ctx.Done()
		return nil
	}
}

func testBrowser(t *testing.T, entries ...discovery.ServiceEntry) *discovery.MDNSBrowser {
	cfg := discovery.DefaultBrowserConfig()
	cfg.BrowseTimeout = 50 * time.Millisecond
	cfg.Browse = announce(t, entries...)
	return discovery.NewMDNSBrowser(cfg)
}

func TestMDNSBrowserFindAll(t *testing.T) {
	b := testBrowser(t,
		discovery.ServiceEntry{Instance: "kitchen", Host: "esp-1.local.", Port: 80, Addrs: []string{"192.168.1.20"}, Text: []string{"ver=v1.1"}},
		discovery.ServiceEntry{Instance: "kitchen", Host: "esp-1.local.", Port: 80, Addrs: []string{"fe80::1"}},
		discovery.ServiceEntry{Instance: "garage", Host: "esp-2.local.", Port: 8080, Addrs: []string{"192.168.1.21"}},
	)
	defer b.Stop()

	devices, err := b.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "kitchen", devices[0].Instance)
	assert.Equal(t, "v1.1", devices[0].Text[discovery.TXTKeyVersion])
	assert.Equal(t, "garage", devices[1].Instance)
	assert.Equal(t, "http://192.168.1.21:8080", devices[1].BaseURL().String())
}

func TestMDNSBrowserFindAllEmpty(t *testing.T) {
	b := testBrowser(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	devices, err := b.FindAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, devices)
}

func TestMDNSBrowserFirstNetworkDevice(t *testing.T) {
	b := testBrowser(t,
		discovery.ServiceEntry{Instance: "no-address"},
		discovery.ServiceEntry{Instance: "kitchen", Port: 80, Addrs: []string{"192.168.1.20"}},
	)

	d, err := b.FirstNetworkDevice(context.Background())
	require.NoError(t, err)
	loc := d.Locator()
	assert.Equal(t, "kitchen", loc.Name)
	assert.Equal(t, "http://192.168.1.20:80", loc.BaseURL.String())
}

func TestMDNSBrowserStop(t *testing.T) {
	b := testBrowser(t)
	ch := b.Browse(context.Background())
	b.Stop()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("browse did not stop")
	}
}

func TestMDNSBrowserReleasesFinishedBrowses(t *testing.T) {
	b := testBrowser(t, discovery.ServiceEntry{Instance: "kitchen", Port: 80, Addrs: []string{"192.168.1.20"}})
	defer b.Stop()

	for range 5 {
		_, err := b.FindAll(context.Background())
		require.NoError(t, err)
		_, err = b.First(context.Background())
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool { return b.Active() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNetworkDeviceBaseURL(t *testing.T) {
	tests := []struct {
		name string
		dev  discovery.NetworkDevice
		want string
	}{
		{"ipv4 preferred", discovery.NetworkDevice{Port: 80, Addresses: []string{"fe80::1", "10.0.0.2"}}, "http://10.0.0.2:80"},
		{"ipv6 only", discovery.NetworkDevice{Port: 8080, Addresses: []string{"fe80::1"}}, "http://[fe80::1]:8080"},
		{"default port", discovery.NetworkDevice{Addresses: []string{"10.0.0.2"}}, "http://10.0.0.2:80"},
		{"https", discovery.NetworkDevice{Port: 443, Addresses: []string{"10.0.0.2"}, Text: map[string]string{"scheme": "https"}}, "https://10.0.0.2:443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dev.BaseURL().String())
		})
	}

	_, ok := discovery.NetworkDevice{Addresses: []string{"not-an-ip"}}.Locator()
	assert.False(t, ok)
}

func TestStringsToTXTRecords(t *testing.T) {
	txt := discovery.StringsToTXTRecords([]string{"ver=v1.1", "sec_ver=1", "flag", "", "k=a=b"})
	assert.Equal(t, discovery.TXTRecordMap{"ver": "v1.1", "sec_ver": "1", "flag": "", "k": "a=b"}, txt)
}
