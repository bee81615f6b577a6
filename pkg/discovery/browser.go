package discovery

import (
	"context"
	"time"
)

// BrowseFunc streams resolved entries of service into found until ctx
// ends. It must not close found.
type BrowseFunc func(ctx context.Context, service, domain string, found chan<- ServiceEntry) error

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// Service is the DNS-SD service type (default: DefaultMDNSService).
	Service string

	// BrowseTimeout bounds FindAll and First when ctx has no deadline.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// Browse resolves entries. If nil, zeroconf is used.
	// Set this in tests to inject entries without a network.
	Browse BrowseFunc
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Service:       DefaultMDNSService,
		BrowseTimeout: BrowseTimeout,
	}
}

// mergeAddresses adds new addresses to existing list, avoiding duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}
