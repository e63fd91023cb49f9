//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = "/org/freedesktop/Notifications"
	notifyCall  = notifyDest + ".Notify"
	notifyNoID  = uint32(0)
	urgencyHint = "urgency"
)

// Notify sends a desktop notification over the Freedesktop.org notification service.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{urgencyHint: dbus.MakeVariant(byte(1))}
	obj := conn.Object(notifyDest, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyCall, 0,
		AppName, notifyNoID, opts.IconPath, title, body, []string{}, hints, opts.timeout())
	return call.Err
}
