package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSoftAPDevice serves proto-ver and echoes POST bodies per endpoint.
type fakeSoftAPDevice struct {
	probeStatus int

	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (d *fakeSoftAPDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	d.mu.Lock()
	d.requests = append(d.requests, r)
	d.bodies = append(d.bodies, body)
	d.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/proto-ver":
		if d.probeStatus != 0 {
			w.WriteHeader(d.probeStatus)
			return
		}
		_, _ = w.Write([]byte(`{"prov":{"ver":"v1.1"}}`))
	case r.Method == http.MethodPost && r.URL.Path == "/prov-scan":
		_, _ = w.Write(append([]byte("resp:"), body...))
	case r.Method == http.MethodPost && r.URL.Path == "/prov-config":
		w.WriteHeader(http.StatusInternalServerError)
	default:
		http.NotFound(w, r)
	}
}

func (d *fakeSoftAPDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func newSoftAPFixture(t *testing.T) (*SoftAP, *fakeSoftAPDevice) {
	t.Helper()
	dev := &fakeSoftAPDevice{}
	srv := httptest.NewServer(dev)
	t.Cleanup(srv.Close)

	tr, err := NewSoftAP(SoftAPConfig{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return tr, dev
}

func TestSoftAPConnectProbesVersion(t *testing.T) {
	tr, dev := newSoftAPFixture(t)

	require.NoError(t, tr.Connect(context.Background()))
	assert.True(t, tr.IsConnected())
	require.Equal(t, 1, dev.count())
	assert.Equal(t, http.MethodGet, dev.requests[0].Method)
	assert.Equal(t, "/proto-ver", dev.requests[0].URL.Path)

	require.NoError(t, tr.Connect(context.Background()))
	assert.Equal(t, 1, dev.count(), "second connect is a no-op")
}

func TestSoftAPConnectFailures(t *testing.T) {
	t.Run("probe rejected", func(t *testing.T) {
		tr, dev := newSoftAPFixture(t)
		dev.probeStatus = http.StatusServiceUnavailable

		err := tr.Connect(context.Background())
		assert.ErrorIs(t, err, ErrConnection)
		assert.False(t, tr.IsConnected())
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		tr, err := NewSoftAP(SoftAPConfig{BaseURL: url})
		require.NoError(t, err)
		assert.ErrorIs(t, tr.Connect(context.Background()), ErrConnection)
	})
}

func TestSoftAPSendData(t *testing.T) {
	tr, dev := newSoftAPFixture(t)
	require.NoError(t, tr.Connect(context.Background()))

	resp, err := tr.SendData(context.Background(), EndpointScan, []byte{0x52, 0x00})
	require.NoError(t, err)
	assert.Equal(t, append([]byte("resp:"), 0x52, 0x00), resp)

	req := dev.requests[1]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/prov-scan", req.URL.Path)
	assert.Equal(t, DefaultSoftAPContentType, req.Header.Get("Content-Type"))
	assert.Equal(t, DefaultSoftAPAccept, req.Header.Get("Accept"))
	assert.Equal(t, []byte{0x52, 0x00}, dev.bodies[1])
}

func TestSoftAPSendDataErrors(t *testing.T) {
	tr, _ := newSoftAPFixture(t)
	require.NoError(t, tr.Connect(context.Background()))

	_, err := tr.SendData(context.Background(), EndpointConfig, []byte{1})
	assert.ErrorIs(t, err, ErrTransport)

	_, err = tr.SendData(context.Background(), Endpoint("custom-data"), []byte{1})
	assert.ErrorIs(t, err, ErrEndpointNotFound)

	_, err = tr.SendData(context.Background(), Endpoint(""), []byte{1})
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestSoftAPSendDataBeforeConnect(t *testing.T) {
	tr, dev := newSoftAPFixture(t)

	_, err := tr.SendData(context.Background(), EndpointScan, []byte{1})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, 0, dev.count())
}

func TestSoftAPDisconnect(t *testing.T) {
	tr, dev := newSoftAPFixture(t)
	require.NoError(t, tr.Connect(context.Background()))

	require.NoError(t, tr.Disconnect())
	require.NoError(t, tr.Disconnect())
	assert.False(t, tr.IsConnected())

	_, err := tr.SendData(context.Background(), EndpointScan, nil)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, 1, dev.count())
}

func TestSoftAPBaseURLWithPath(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
	}))
	defer srv.Close()

	tr, err := NewSoftAP(SoftAPConfig{BaseURL: srv.URL + "/dev1/"})
	require.NoError(t, err)
	require.NoError(t, tr.Connect(context.Background()))
	_, err = tr.SendData(context.Background(), EndpointSession, []byte{1})
	require.NoError(t, err)

	assert.Equal(t, []string{"/dev1/proto-ver", "/dev1/prov-session"}, paths)
}

func TestNewSoftAPValidatesURL(t *testing.T) {
	_, err := NewSoftAP(SoftAPConfig{BaseURL: "ftp://192.168.4.1"})
	assert.Error(t, err)

	tr, err := NewSoftAP(SoftAPConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSoftAPBaseURL, tr.BaseURL().String())
}
