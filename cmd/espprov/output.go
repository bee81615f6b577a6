package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/history"
	"github.com/espprov/espprov-go/pkg/wire"
)

// printer writes command results as text tables or YAML documents.
type printer struct {
	w        io.Writer
	yamlMode bool
}

// yaml writes v as one YAML document.
func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (p *printer) table(header string, rows func(w io.Writer)) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

type radioRow struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	RSSI    int    `yaml:"rssi"`
}

func (p *printer) radioDevices(devs []discovery.RadioDevice) error {
	if p.yamlMode {
		rows := make([]radioRow, 0, len(devs))
		for _, d := range devs {
			rows = append(rows, radioRow{Name: d.Name, Address: d.Address, RSSI: d.RSSI})
		}
		return p.yaml(map[string]any{"ble": rows})
	}
	if len(devs) == 0 {
		fmt.Fprintln(p.w, "No BLE devices found")
		return nil
	}
	return p.table("NAME\tADDRESS\tRSSI", func(w io.Writer) {
		for _, d := range devs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", d.Name, d.Address, d.RSSI)
		}
	})
}

type networkRow struct {
	Instance string `yaml:"instance"`
	Host     string `yaml:"host"`
	URL      string `yaml:"url,omitempty"`
	Version  string `yaml:"version,omitempty"`
}

func (p *printer) networkDevices(devs []discovery.NetworkDevice) error {
	rows := make([]networkRow, 0, len(devs))
	for _, d := range devs {
		row := networkRow{Instance: d.Instance, Host: d.Host, Version: d.Text[discovery.TXTKeyVersion]}
		if u := d.BaseURL(); u != nil {
			row.URL = u.String()
		}
		rows = append(rows, row)
	}
	if p.yamlMode {
		return p.yaml(map[string]any{"mdns": rows})
	}
	if len(rows) == 0 {
		fmt.Fprintln(p.w, "No network devices found")
		return nil
	}
	return p.table("INSTANCE\tHOST\tURL\tVERSION", func(w io.Writer) {
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Instance, r.Host, r.URL, r.Version)
		}
	})
}

func (p *printer) accessPoints(aps []wire.WiFiAP) error {
	if p.yamlMode {
		return p.yaml(map[string]any{"access_points": aps})
	}
	if len(aps) == 0 {
		fmt.Fprintln(p.w, "No access points found")
		return nil
	}
	return p.table("SSID\tRSSI\tAUTH\tCHANNEL\tBSSID", func(w io.Writer) {
		for _, ap := range aps {
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", ap.SSID, ap.RSSI, ap.Auth, ap.Channel, formatBSSID(ap.BSSID))
		}
	})
}

// formatBSSID turns "aabbccddeeff" into "aa:bb:cc:dd:ee:ff".
func formatBSSID(s string) string {
	if len(s) != 12 {
		return s
	}
	parts := make([]string, 0, 6)
	for i := 0; i < len(s); i += 2 {
		parts = append(parts, s[i:i+2])
	}
	return strings.Join(parts, ":")
}

func (p *printer) wifiStatus(st *wire.WiFiStatus) error {
	if p.yamlMode {
		return p.yaml(st)
	}
	fmt.Fprintf(p.w, "State: %s\n", st.State)
	if st.FailReason != nil {
		fmt.Fprintf(p.w, "Reason: %s\n", *st.FailReason)
	}
	if st.Connected != nil {
		fmt.Fprintf(p.w, "SSID: %s\n", st.Connected.SSID)
		fmt.Fprintf(p.w, "BSSID: %s\n", formatBSSID(st.Connected.BSSID))
		fmt.Fprintf(p.w, "Channel: %d\n", st.Connected.Channel)
		fmt.Fprintf(p.w, "Auth: %s\n", st.Connected.Auth)
	}
	if st.IPv4Addr != "" {
		fmt.Fprintf(p.w, "IPv4: %s\n", st.IPv4Addr)
	}
	return nil
}

func (p *printer) protoVersion(v *device.ProtoVersion) error {
	if p.yamlMode {
		return p.yaml(v)
	}
	fmt.Fprintf(p.w, "Version: %s\n", v.Version)
	if scheme, ok := v.Scheme(); ok {
		fmt.Fprintf(p.w, "Security: %s\n", scheme)
	}
	if len(v.Capabilities) > 0 {
		fmt.Fprintf(p.w, "Capabilities: %s\n", strings.Join(v.Capabilities, ", "))
	}
	return nil
}

func (p *printer) attempts(list []history.Attempt) error {
	if p.yamlMode {
		return p.yaml(map[string]any{"attempts": list})
	}
	if len(list) == 0 {
		fmt.Fprintln(p.w, "No provisioning attempts recorded")
		return nil
	}
	return p.table("ID\tSTARTED\tDEVICE\tSSID\tOUTCOME\tDETAIL", func(w io.Writer) {
		for _, a := range list {
			detail := a.IPv4Addr
			if a.Outcome == history.OutcomeFailed {
				detail = a.Step
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.StartedAt.Local().Format("2006-01-02 15:04:05"), a.Device, a.SSID, a.Outcome, detail)
		}
	})
}
