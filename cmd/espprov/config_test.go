package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/transport"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, transport.DefaultServiceUUID, cfg.ServiceUUID)
	assert.Equal(t, discovery.DefaultNamePrefix, cfg.NamePrefix)
	assert.Equal(t, discovery.DefaultMDNSService, cfg.MDNSService)
	assert.Equal(t, transport.DefaultFallbackTable(), cfg.Fallback)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 20, cfg.Poll.MaxAttempts)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "espprov.yaml", `
name_prefix: MYDEV_
timeout: 45s
log_level: debug
hci_device: 1
fallback:
  prov-session: ff61
poll:
  initial: 250ms
  max_attempts: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "MYDEV_", cfg.NamePrefix)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1, cfg.HCIDevice)
	assert.Equal(t, "ff61", cfg.Fallback["prov-session"])
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Initial)
	assert.Equal(t, 5, cfg.Poll.MaxAttempts)

	// Unset keys keep their defaults.
	assert.Equal(t, transport.DefaultServiceUUID, cfg.ServiceUUID)
	assert.Equal(t, discovery.DefaultMDNSService, cfg.MDNSService)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "espprov.toml", `
service_uuid = "0000ffff-0000-1000-8000-00805f9b34fb"
mdns_service = "_custom._tcp"
protocol_log = "/tmp/run.plog"
history_db = ""

[fallback]
prov-session = "ff51"
prov-config = "ff52"

[poll]
initial = "500ms"
max_attempts = 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0000ffff-0000-1000-8000-00805f9b34fb", cfg.ServiceUUID)
	assert.Equal(t, "_custom._tcp", cfg.MDNSService)
	assert.Equal(t, "/tmp/run.plog", cfg.ProtocolLog)
	assert.Empty(t, cfg.HistoryDB)
	assert.Equal(t, map[string]string{"prov-session": "ff51", "prov-config": "ff52"}, cfg.Fallback)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Initial)
	assert.Equal(t, 3, cfg.Poll.MaxAttempts)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, discovery.DefaultNamePrefix, cfg.NamePrefix)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1.5, cfg.Poll.Multiplier)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"unknown extension", "espprov.json", `{}`},
		{"bad yaml", "espprov.yaml", "timeout: [1"},
		{"bad toml", "espprov.toml", "timeout = "},
		{"unknown toml key", "espprov.toml", `colour = "blue"`},
		{"bad service uuid", "espprov.yaml", "service_uuid: not-a-uuid"},
		{"bad fallback uuid", "espprov.toml", "[fallback]\nprov-session = \"zz\""},
		{"bad log level", "espprov.yaml", "log_level: loud"},
		{"negative hci", "espprov.yaml", "hci_device: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfig(t, "espprov.yaml", "log_level: debug\ntimeout: 5s\n")

	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs([]string{"--config", path, "--timeout", "7s", "--history-db", "",
		"qr", "parse", `{"ver":"v1","name":"PROV_1","transport":"ble"}`})
	require.NoError(t, root.ExecuteContext(t.Context()))

	assert.Contains(t, out.String(), "Name: PROV_1")
	assert.Equal(t, 7*time.Second, a.cfg.Timeout)
	assert.Equal(t, "debug", a.cfg.LogLevel)
	assert.Empty(t, a.cfg.HistoryDB)
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
		_, err := parseLogLevel(s)
		assert.NoError(t, err, s)
	}
	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}
