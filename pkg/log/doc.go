// Package log provides protocol capture for provisioning sessions.
//
// It is separate from operational logging (slog). Protocol capture records a
// machine-readable trace of every frame, decoded message and state change
// so a failed provisioning run can be inspected afterwards.
//
// # Basic Usage
//
//	// Console output via slog
//	opts = append(opts, device.WithProtocolLogger(log.NewSlogAdapter(slog.Default())))
//
//	// Binary capture file
//	fl, _ := log.NewFileLogger("/tmp/provision.plog")
//	opts = append(opts, device.WithProtocolLogger(fl))
//
//	// Both
//	opts = append(opts, device.WithProtocolLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()), fl)))
//
// # Event Types
//
//   - Transport: raw request/response bytes per endpoint (FrameEvent)
//   - Provisioning: decoded sub-protocol messages (MessageEvent)
//   - Security/Provisioning: lifecycle changes (StateChangeEvent)
//
// Errors at any layer are captured as ErrorEventData.
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events with the .plog
// extension. `espprov log` reads and filters them.
package log
