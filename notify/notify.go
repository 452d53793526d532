// Package notify delivers composed notifications to the OS notification
// system. The pipeline treats delivery as an opaque capability: it hands
// over a title, body, icon path, silent flag, and optionally pre-rendered
// toast markup, and observes no result beyond an error.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification is the content handed to platform delivery.
type Notification struct {
	// Title is the notification title.
	Title string

	// Body is the notification body text.
	Body string

	// IconPath is an optional path to an icon image file.
	IconPath string

	// Silent suppresses the platform's own alert sound.
	Silent bool

	// ToastXML is pre-rendered rich markup, honored only on platforms
	// that support it.
	ToastXML string
}

// Notifier is the interface for platform-specific notification delivery.
type Notifier interface {
	// Send displays a notification. Fire-and-forget: no delivery
	// guarantee is observed beyond the returned error.
	Send(ctx context.Context, notification Notification) error

	// SupportsRichToast reports whether the platform honors ToastXML
	// (progress bars, custom icon layout).
	SupportsRichToast() bool

	// IsAvailable returns true if OS notifications are available.
	IsAvailable() bool

	// Close cleans up notification system resources.
	Close() error
}

// Config contains delivery configuration.
type Config struct {
	// AppName is the application name shown in notifications.
	AppName string

	// AppID is the platform-specific application identifier.
	AppID string

	// Timeout bounds a single delivery operation.
	Timeout time.Duration
}

// DefaultConfig returns the default delivery configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "Questdeck",
		AppID:   "com.questdeck.app",
		Timeout: 5 * time.Second,
	}
}

// New creates a platform-specific notifier.
func New(config Config) (Notifier, error) {
	return newPlatformNotifier(config)
}

// Sentinel errors.
var (
	ErrNotAvailable       = errors.New("OS notifications not available")
	ErrNotificationFailed = errors.New("failed to send notification")
)
