package notify

import (
	"context"
	"fmt"

	fdo "github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
)

// Desktop posts freedesktop notifications on the D-Bus session bus.
type Desktop struct{}

func (Desktop) Send(ctx context.Context, m Message) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	defer conn.Close()

	_, err = fdo.SendNotification(conn, fdo.Notification{
		AppName:       m.AppName,
		AppIcon:       m.Icon,
		Summary:       m.Summary,
		Body:          m.Body,
		Hints:         map[string]dbus.Variant{},
		ExpireTimeout: m.Timeout,
	})
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}
