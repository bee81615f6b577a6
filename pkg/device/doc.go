// Package device drives one provisioning session with a headless device.
//
// A Device binds a transport (BLE or SoftAP) and a security session, then
// runs the scan and config sub-protocols over the protected exchange:
//
//	d := device.New(device.NetworkLocator(base))
//	if err := d.Connect(ctx, nil); err != nil {
//		return err
//	}
//	defer d.Disconnect()
//
//	aps, err := d.ScanWiFiList(ctx)
//	...
//	err = d.Provision(ctx, "home", "secret")
//
// Operations on one Device are serialised. The core never retries; callers
// that want to wait for the station to come up use WaitForStation.
package device
