package transport

import (
	"context"
	"errors"
	"sync"
)

// fakeDescriptor is an in-memory GATT descriptor.
type fakeDescriptor struct {
	uuid  string
	value []byte
}

func (d *fakeDescriptor) UUID() string          { return d.uuid }
func (d *fakeDescriptor) Read() ([]byte, error) { return d.value, nil }

// fakeChar records writes and answers reads from respond.
type fakeChar struct {
	uuid     string
	descs    []Descriptor
	respond  func(req []byte) []byte
	writeErr error

	mu     sync.Mutex
	writes [][]byte
	last   []byte
}

func newFakeChar(uuid, label string) *fakeChar {
	c := &fakeChar{uuid: uuid}
	if label != "" {
		c.descs = []Descriptor{&fakeDescriptor{uuid: "00002901-0000-1000-8000-00805f9b34fb", value: []byte(label)}}
	}
	return c
}

func (c *fakeChar) UUID() string                       { return c.uuid }
func (c *fakeChar) Descriptors() ([]Descriptor, error) { return c.descs, nil }

func (c *fakeChar) Write(v []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, append([]byte(nil), v...))
	c.last = v
	return nil
}

func (c *fakeChar) Read() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.respond != nil {
		return c.respond(c.last), nil
	}
	return append([]byte("echo:"), c.last...), nil
}

func (c *fakeChar) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

// fakePeripheral exposes one service.
type fakePeripheral struct {
	service string
	chars   []Characteristic

	mu     sync.Mutex
	up     bool
	closed int
}

func (p *fakePeripheral) Characteristics(service string) ([]Characteristic, error) {
	if !SameUUID(service, p.service) {
		return nil, ErrServiceNotFound
	}
	return p.chars, nil
}

func (p *fakePeripheral) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.up
}

func (p *fakePeripheral) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.up = false
	p.closed++
	return nil
}

// drop simulates an out-of-band link loss.
func (p *fakePeripheral) drop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.up = false
}

// fakeDialer hands out peripherals in order.
type fakeDialer struct {
	peripherals []*fakePeripheral
	err         error

	mu    sync.Mutex
	dials int
}

func (d *fakeDialer) Dial(_ context.Context, _ string) (Peripheral, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	if d.dials >= len(d.peripherals) {
		return nil, errors.New("no peripheral in range")
	}
	p := d.peripherals[d.dials]
	d.dials++
	p.up = true
	return p, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}
