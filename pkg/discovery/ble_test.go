package discovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/transport"
)

// replay returns a ScanFunc that delivers advs and then waits for ctx.
func replay(advs ...discovery.Advertisement) discovery.ScanFunc {
	return func(ctx context.Context, handle func(discovery.Advertisement)) error {
		for _, a := range advs {
			if ctx.Err() != nil {
				break
			}
			handle(a)
		}
		<-ctx.Done()
		return ctx.Err()
	}
}

func testScanner(advs ...discovery.Advertisement) *discovery.BLEScanner {
	cfg := discovery.DefaultBLEScannerConfig()
	cfg.Timeout = 50 * time.Millisecond
	cfg.Scan = replay(advs...)
	return discovery.NewBLEScanner(cfg)
}

func TestBLEScannerMatches(t *testing.T) {
	s := testScanner()

	assert.True(t, s.Matches(discovery.Advertisement{Name: "PROV_12AB34"}))
	assert.True(t, s.Matches(discovery.Advertisement{
		Name:     "thermostat",
		Services: []string{"1775244d6b43439b877c060f2d9bed07"},
	}))
	assert.False(t, s.Matches(discovery.Advertisement{Name: "headphones", Services: []string{"180d"}}))
	assert.False(t, s.Matches(discovery.Advertisement{}))

	all := discovery.NewBLEScanner(discovery.BLEScannerConfig{})
	assert.True(t, all.Matches(discovery.Advertisement{Name: "anything"}))
}

func TestBLEScannerScan(t *testing.T) {
	s := testScanner(
		discovery.Advertisement{Address: "aa", Name: "PROV_A", RSSI: -70},
		discovery.Advertisement{Address: "bb", Name: "speaker", RSSI: -30},
		discovery.Advertisement{Address: "cc", Name: "PROV_C", RSSI: -50},
		discovery.Advertisement{Address: "aa", Name: "", RSSI: -40, Services: []string{transport.DefaultServiceUUID}},
	)

	devices, err := s.Scan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []discovery.RadioDevice{
		{Address: "aa", Name: "PROV_A", RSSI: -40},
		{Address: "cc", Name: "PROV_C", RSSI: -50},
	}, devices)
}

func TestBLEScannerScanError(t *testing.T) {
	boom := errors.New("adapter off")
	cfg := discovery.DefaultBLEScannerConfig()
	cfg.Scan = func(context.Context, func(discovery.Advertisement)) error { return boom }

	_, err := discovery.NewBLEScanner(cfg).Scan(t.Context())
	assert.ErrorIs(t, err, boom)
}

func TestBLEScannerFirst(t *testing.T) {
	s := testScanner(
		discovery.Advertisement{Address: "bb", Name: "speaker"},
		discovery.Advertisement{Address: "cc", Name: "PROV_C", RSSI: -50},
		discovery.Advertisement{Address: "dd", Name: "PROV_D", RSSI: -20},
	)

	r, err := s.First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cc", r.Address)

	d, err := s.FirstRadioDevice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, device.Locator{Address: "cc", Name: "PROV_C"}, d.Locator())
	assert.Equal(t, device.StateDisconnected, d.State())
}

func TestBLEScannerFirstNothingFound(t *testing.T) {
	s := testScanner(discovery.Advertisement{Address: "bb", Name: "speaker"})

	_, err := s.First(context.Background())
	assert.ErrorIs(t, err, discovery.ErrNoDevice)
}
