package device

import (
	"context"
	"fmt"
	"time"

	"github.com/espprov/espprov-go/pkg/connection"
	"github.com/espprov/espprov-go/pkg/log"
	"github.com/espprov/espprov-go/pkg/transport"
	"github.com/espprov/espprov-go/pkg/wire"
)

// Credential limits of the device's station config.
const (
	MaxSSIDLength       = 32
	MaxPassphraseLength = 64
)

// Provision sends the station credentials and asks the device to apply
// them. Apply is only sent after set-config succeeded; neither is retried.
func (d *Device) Provision(ctx context.Context, ssid, passphrase string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireLocked(opProvision); err != nil {
		return err
	}
	if err := validateCredentials(ssid, passphrase); err != nil {
		return opError(opProvision, "", fmt.Errorf("%w: %w", ErrProvisionFailed, err))
	}

	err := d.exchange(ctx, transport.EndpointConfig, wire.ConfigCmdSetConfig.String(),
		wire.EncodeSetConfig(ssid, passphrase), wire.DecodeSetConfigResponse)
	if err != nil {
		return opError(opProvision, StepSetConfig, fmt.Errorf("%w: %w", ErrProvisionFailed, err))
	}

	err = d.exchange(ctx, transport.EndpointConfig, wire.ConfigCmdApply.String(),
		wire.EncodeApplyConfig(), wire.DecodeApplyConfigResponse)
	if err != nil {
		return opError(opProvision, StepApplyConfig, fmt.Errorf("%w: %w", ErrProvisionFailed, err))
	}

	d.logger.Info("credentials applied", "ssid", ssid)
	return nil
}

func validateCredentials(ssid, passphrase string) error {
	if len(ssid) == 0 || len(ssid) > MaxSSIDLength {
		return fmt.Errorf("%w: ssid must be 1-%d bytes, got %d", ErrInvalidCredentials, MaxSSIDLength, len(ssid))
	}
	if len(passphrase) > MaxPassphraseLength {
		return fmt.Errorf("%w: passphrase longer than %d bytes", ErrInvalidCredentials, MaxPassphraseLength)
	}
	return nil
}

// FetchWiFiStatus reads the device's station status.
func (d *Device) FetchWiFiStatus(ctx context.Context) (*wire.WiFiStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireLocked(opStatus); err != nil {
		return nil, err
	}

	var status *wire.WiFiStatus
	err := d.exchange(ctx, transport.EndpointConfig, wire.ConfigCmdGetStatus.String(),
		wire.EncodeGetStatus(), func(b []byte) error {
			var derr error
			status, derr = wire.DecodeGetStatusResponse(b)
			return derr
		})
	if err != nil {
		return nil, opError(opStatus, "", err)
	}
	return status, nil
}

// WaitForStation polls the station status until the device reports
// Connected or Failed, ctx ends, or cfg.MaxAttempts polls were made.
// The last status read is returned alongside any error.
func (d *Device) WaitForStation(ctx context.Context, cfg connection.BackoffConfig) (*wire.WiFiStatus, error) {
	var last *wire.WiFiStatus
	err := connection.Poll(ctx, cfg, func(ctx context.Context) (bool, error) {
		status, err := d.FetchWiFiStatus(ctx)
		if err != nil {
			return false, err
		}
		if last == nil || last.State != status.State {
			d.logStation(last, status)
		}
		last = status
		return status.State == wire.StationConnected || status.State == wire.StationFailed, nil
	})
	return last, err
}

func (d *Device) logStation(old, cur *wire.WiFiStatus) {
	oldState := ""
	if old != nil {
		oldState = old.State.String()
	}
	reason := ""
	if cur.FailReason != nil {
		reason = cur.FailReason.String()
	}
	d.logger.Debug("station state", "state", cur.State.String(), "reason", reason)
	d.plog.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerProvisioning,
		Category:  log.CategoryState,
		Transport: d.loc.Kind(),
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityProvisioning,
			OldState: oldState,
			NewState: cur.State.String(),
			Reason:   reason,
		},
	})
}
