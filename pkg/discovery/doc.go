// Package discovery finds devices that are waiting to be provisioned.
//
// # BLE
//
// Unprovisioned devices advertise over BLE with a name starting with
// "PROV_" and, on some firmware, the provisioning service UUID. BLEScanner
// collects matching advertisements and turns them into radio locators.
//
// # mDNS
//
// Devices already reachable on a network can announce their provisioning
// HTTP server over DNS-SD. MDNSBrowser browses a configurable service type
// (default _esp_wifi_prov._tcp) and yields network locators.
//
// # SoftAP
//
// A device in SoftAP mode serves provisioning on its own access point. The
// user joins that network and SoftAPDevice builds a Device for its base URL.
//
// # QR Code
//
// Provisioning QR codes carry a JSON payload:
//
//	{"ver":"v1","name":"PROV_12AB34","pop":"abcd1234","transport":"ble","security":"1"}
//
// ParseQRCode decodes it into the device name, transport and security
// config needed to connect.
package discovery
