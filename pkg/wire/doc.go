// Package wire defines the binary message format spoken on the provisioning
// endpoints.
//
// Devices use the protocomm schema: every endpoint carries one payload
// message encoded in the protobuf wire format (field-tagged varints and
// length-delimited bytes). The package encodes and decodes those payloads
// directly with protowire, so no generated code is needed.
//
// # Payloads
//
//   - SessionData: security handshake on prov-session
//   - ScanPayload: scan start/status/result on prov-scan
//   - ConfigPayload: get-status/set-config/apply-config on prov-config
//
// # Status
//
// Every response carries a Status. A well-formed response with a
// non-success status decodes to a *StatusError; a malformed or unexpected
// response decodes to ErrInvalidMessage.
//
// # Zero Values
//
// Scalars equal to their zero value are omitted on encode, as proto3 does.
// Sub-messages selected in a oneof are always emitted, even when empty, so
// the receiver can tell which command was sent.
package wire
