// Package security implements the session layer of the provisioning
// protocol.
//
// A Security value performs one handshake round trip on the prov-session
// endpoint and then transforms every request and response payload. Sec0
// is a passthrough with a trivial handshake. Stronger schemes plug in
// through a Registry factory without changes to the orchestrator; the
// Config type already carries their inputs (proof of possession for
// Sec1, SRP6a credentials for Sec2).
package security
