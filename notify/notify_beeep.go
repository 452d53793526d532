//go:build !windows && !linux && !darwin

package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// beeepNotifier implements Notifier using the cross-platform beeep library
// on platforms without a dedicated implementation.
type beeepNotifier struct {
	config Config
}

func newPlatformNotifier(config Config) (Notifier, error) {
	return &beeepNotifier{config: config}, nil
}

// Send sends a notification using beeep.
func (n *beeepNotifier) Send(_ context.Context, notification Notification) error {
	return beeep.Notify(notification.Title, notification.Body, notification.IconPath)
}

// SupportsRichToast reports rich markup support. beeep delivers plain
// notifications only.
func (n *beeepNotifier) SupportsRichToast() bool {
	return false
}

// IsAvailable returns true since beeep handles platform detection internally.
func (n *beeepNotifier) IsAvailable() bool {
	return true
}

// Close is a no-op for beeep.
func (n *beeepNotifier) Close() error {
	return nil
}
