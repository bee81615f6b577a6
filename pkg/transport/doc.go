// Package transport carries provisioning requests to a device over one of
// two channels.
//
// Both variants implement Transport and resolve a logical Endpoint name
// to a physical address in their own way:
//
//	┌──────────────┬─────────────────────────────────────────────┐
//	│ BLE          │ endpoint → GATT characteristic, learned from │
//	│              │ 0x2901 user descriptions on every connect    │
//	├──────────────┼─────────────────────────────────────────────┤
//	│ SoftAP       │ endpoint → POST <base URL>/<endpoint>        │
//	└──────────────┴─────────────────────────────────────────────┘
//
// Each SendData call is one synchronous write-then-read round trip. There
// is no pipelining.
//
// The BLE variant talks to the radio through the Dialer/Peripheral
// interfaces. NewBLEDialer adapts github.com/go-ble/ble; tests substitute
// an in-memory peripheral.
package transport
