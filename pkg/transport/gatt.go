package transport

import "context"

// Dialer opens a GATT link to a peripheral by radio address.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Peripheral, error)
}

// Peripheral is a connected GATT server.
type Peripheral interface {
	// Characteristics lists the characteristics of the given service.
	// It returns ErrServiceNotFound when the service is absent.
	Characteristics(service string) ([]Characteristic, error)

	// Connected reports whether the link is still up.
	Connected() bool

	// Close drops the link.
	Close() error
}

// Characteristic is one addressable unit of a GATT service.
type Characteristic interface {
	UUID() string

	// Descriptors lists the characteristic's descriptors.
	Descriptors() ([]Descriptor, error)

	// Write writes value with response.
	Write(value []byte) error

	// Read reads the full value.
	Read() ([]byte, error)
}

// Descriptor is a GATT characteristic descriptor.
type Descriptor interface {
	UUID() string
	Read() ([]byte, error)
}
