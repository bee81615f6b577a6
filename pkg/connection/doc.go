// Package connection provides caller-side retry pacing for provisioning.
//
// The protocol engine itself never retries. After Provision the device
// moves through CONNECTING before it settles, so callers poll the
// station status; flaky radio links are likewise retried by the caller.
// Both use the exponential backoff here:
//
//  1. Initial delay: 1 second
//  2. Exponential increase by 1.5x: 1.5s, 2.25s, 3.4s, ...
//  3. Maximum delay: 10 seconds
//
// # Jitter
//
//	actual_delay = base_delay + random(0, base_delay * 0.1)
package connection
