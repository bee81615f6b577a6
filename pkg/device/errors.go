package device

import (
	"errors"
	"fmt"

	"github.com/espprov/espprov-go/pkg/transport"
)

// Device errors.
var (
	// ErrNotConnected indicates an operation before Connect succeeded.
	ErrNotConnected = transport.ErrNotConnected

	// ErrInvalidLocator indicates a locator that names no device.
	ErrInvalidLocator = errors.New("invalid locator")

	// ErrInvalidCredentials indicates an SSID or passphrase the device
	// cannot accept.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrScanStartFailed indicates the device rejected the scan start.
	ErrScanStartFailed = errors.New("scan start failed")

	// ErrScanIncomplete indicates the scan had not finished when polled.
	ErrScanIncomplete = errors.New("scan incomplete")

	// ErrProvisionFailed indicates set-config or apply-config failed.
	ErrProvisionFailed = errors.New("provisioning failed")
)

// OpError describes a failed device operation.
type OpError struct {
	// Op is the public operation, e.g. "scan" or "provision".
	Op string

	// Step is the stage that failed, e.g. "start" or "apply-config".
	Step string

	Err error
}

func (e *OpError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Step, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op, step string, err error) error {
	return &OpError{Op: op, Step: step, Err: err}
}

// Operation and step names used in OpError.
const (
	opConnect   = "connect"
	opScan      = "scan"
	opProvision = "provision"
	opStatus    = "status"
	opSend      = "send"
	opVersion   = "version"

	StepTransport   = "transport"
	StepSecurity    = "security"
	StepHandshake   = "handshake"
	StepScanStart   = "start"
	StepScanStatus  = "status"
	StepScanResult  = "result"
	StepSetConfig   = "set-config"
	StepApplyConfig = "apply-config"
)
