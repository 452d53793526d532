//go:build linux

package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// linuxNotifier implements Notifier for Linux using notify-send. Rich toast
// markup is not supported; the payload fields are delivered directly.
type linuxNotifier struct {
	config Config
}

func newPlatformNotifier(config Config) (Notifier, error) {
	return &linuxNotifier{config: config}, nil
}

// Send sends a notification using libnotify (notify-send).
func (l *linuxNotifier) Send(ctx context.Context, notification Notification) error {
	if !l.IsAvailable() {
		return ErrNotAvailable
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	urgency := "normal"
	if notification.Silent {
		urgency = "low"
	}

	args := []string{
		"--app-name=" + l.config.AppName,
		"--urgency=" + urgency,
		"--expire-time=5000",
	}
	if notification.IconPath != "" {
		args = append(args, "--icon="+notification.IconPath)
	}
	if notification.Silent {
		args = append(args, "--hint=boolean:suppress-sound:true")
	}
	args = append(args, notification.Title, notification.Body)

	cmd := exec.CommandContext(ctx, "notify-send", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %v (output: %s)", ErrNotificationFailed, err, string(output))
	}
	return nil
}

// SupportsRichToast reports rich markup support. notify-send cannot render
// toast XML or progress bars.
func (l *linuxNotifier) SupportsRichToast() bool {
	return false
}

// IsAvailable checks for notify-send and a D-Bus session bus.
func (l *linuxNotifier) IsAvailable() bool {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return false
	}
	return os.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
}

// Close is a no-op on Linux.
func (l *linuxNotifier) Close() error {
	return nil
}
