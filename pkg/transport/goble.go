package transport

import (
	"context"
	"fmt"

	"github.com/go-ble/ble"
)

// NewBLEDialer returns a Dialer backed by go-ble's default HCI device.
// The caller must install one with ble.SetDefaultDevice first.
func NewBLEDialer() Dialer {
	return goBLEDialer{}
}

type goBLEDialer struct{}

func (goBLEDialer) Dial(ctx context.Context, addr string) (Peripheral, error) {
	cln, err := ble.Dial(ctx, ble.NewAddr(addr))
	if err != nil {
		return nil, err
	}
	return &goBLEPeripheral{cln: cln}, nil
}

type goBLEPeripheral struct {
	cln ble.Client
}

func (p *goBLEPeripheral) Characteristics(service string) ([]Characteristic, error) {
	want, err := NormalizeUUID(service)
	if err != nil {
		return nil, err
	}
	filter, err := ble.Parse(want)
	if err != nil {
		return nil, err
	}

	svcs, err := p.cln.DiscoverServices([]ble.UUID{filter})
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}
	var svc *ble.Service
	for _, s := range svcs {
		if s.UUID.Equal(filter) {
			svc = s
			break
		}
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	chars, err := p.cln.DiscoverCharacteristics(nil, svc)
	if err != nil {
		return nil, fmt.Errorf("discover characteristics: %w", err)
	}
	out := make([]Characteristic, 0, len(chars))
	for _, c := range chars {
		out = append(out, &goBLECharacteristic{cln: p.cln, c: c})
	}
	return out, nil
}

func (p *goBLEPeripheral) Connected() bool {
	select {
	case <-p.cln.Disconnected():
		return false
	default:
		return true
	}
}

func (p *goBLEPeripheral) Close() error {
	return p.cln.CancelConnection()
}

type goBLECharacteristic struct {
	cln ble.Client
	c   *ble.Characteristic
}

func (c *goBLECharacteristic) UUID() string {
	return c.c.UUID.String()
}

func (c *goBLECharacteristic) Descriptors() ([]Descriptor, error) {
	descs, err := c.cln.DiscoverDescriptors(nil, c.c)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		out = append(out, &goBLEDescriptor{cln: c.cln, d: d})
	}
	return out, nil
}

func (c *goBLECharacteristic) Write(value []byte) error {
	return c.cln.WriteCharacteristic(c.c, value, false)
}

func (c *goBLECharacteristic) Read() ([]byte, error) {
	return c.cln.ReadLongCharacteristic(c.c)
}

type goBLEDescriptor struct {
	cln ble.Client
	d   *ble.Descriptor
}

func (d *goBLEDescriptor) UUID() string {
	return d.d.UUID.String()
}

func (d *goBLEDescriptor) Read() ([]byte, error) {
	return d.cln.ReadDescriptor(d.d)
}

var (
	_ Dialer         = goBLEDialer{}
	_ Peripheral     = (*goBLEPeripheral)(nil)
	_ Characteristic = (*goBLECharacteristic)(nil)
	_ Descriptor     = (*goBLEDescriptor)(nil)
)
