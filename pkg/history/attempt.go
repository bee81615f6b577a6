package history

import (
	"errors"
	"time"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/wire"
)

// NewAttempt starts an attempt record for a device.
func NewAttempt(loc device.Locator, ssid string) *Attempt {
	return &Attempt{
		StartedAt: time.Now(),
		Device:    loc.String(),
		Transport: loc.Kind(),
		SSID:      ssid,
	}
}

// Observe records the last station status read from the device.
func (a *Attempt) Observe(status *wire.WiFiStatus) {
	if status == nil {
		return
	}
	a.StationState = status.State.String()
	a.IPv4Addr = status.IPv4Addr
}

// Finish sets the outcome and duration. A failed device operation records
// the step that failed.
func (a *Attempt) Finish(err error) {
	a.Duration = time.Since(a.StartedAt)
	if err == nil {
		a.Outcome = OutcomeSuccess
		return
	}
	a.Outcome = OutcomeFailed
	a.Error = err.Error()

	var opErr *device.OpError
	if errors.As(err, &opErr) {
		a.Step = opErr.Op
		if opErr.Step != "" {
			a.Step += "/" + opErr.Step
		}
	}
}
