package device

import (
	"context"
	"fmt"

	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// ScanWiFiList asks the device to scan with the default parameters and
// returns every access point it found.
func (d *Device) ScanWiFiList(ctx context.Context) ([]wire.WiFiAP, error) {
	return d.ScanWiFiListWithParams(ctx, wire.DefaultScanParams())
}

// ScanWiFiListWithParams starts a scan, checks it finished and fetches the
// results one entry at a time. Entries are returned in device order.
func (d *Device) ScanWiFiListWithParams(ctx context.Context, params wire.ScanParams) ([]wire.WiFiAP, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireLocked(opScan); err != nil {
		return nil, err
	}

	err := d.exchange(ctx, transport.EndpointScan, wire.ScanCmdStart.String(),
		wire.EncodeScanStart(params), wire.DecodeScanStartResponse)
	if err != nil {
		return nil, opError(opScan, StepScanStart, fmt.Errorf("%w: %w", ErrScanStartFailed, err))
	}

	var status wire.ScanStatus
	err = d.exchange(ctx, transport.EndpointScan, wire.ScanCmdStatus.String(),
		wire.EncodeScanStatus(), func(b []byte) error {
			var derr error
			status, derr = wire.DecodeScanStatusResponse(b)
			return derr
		})
	if err != nil {
		return nil, opError(opScan, StepScanStatus, err)
	}
	if !status.Finished {
		return nil, opError(opScan, StepScanStatus, ErrScanIncomplete)
	}

	aps := make([]wire.WiFiAP, 0, status.Count)
	for i := uint32(0); i < status.Count; i++ {
		err := d.exchange(ctx, transport.EndpointScan, wire.ScanCmdResult.String(),
			wire.EncodeScanResult(i, 1), func(b []byte) error {
				page, derr := wire.DecodeScanResultResponse(b)
				aps = append(aps, page...)
				return derr
			})
		if err != nil {
			return nil, opError(opScan, StepScanResult, fmt.Errorf("entry %d: %w", i, err))
		}
	}

	d.logger.Info("scan complete", "count", len(aps))
	return aps, nil
}
