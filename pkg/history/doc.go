// Package history records provisioning attempts in a local SQLite
// database so operators can review which devices were provisioned, when,
// and why an attempt failed.
package history
