//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// maxAppleScriptStringLength bounds strings interpolated into AppleScript.
const maxAppleScriptStringLength = 1000

// darwinNotifier implements Notifier for macOS using osascript. Rich toast
// markup is not supported; the payload fields are delivered directly.
type darwinNotifier struct {
	config Config
}

func newPlatformNotifier(config Config) (Notifier, error) {
	return &darwinNotifier{config: config}, nil
}

// Send sends a notification through the macOS notification center.
func (d *darwinNotifier) Send(ctx context.Context, notification Notification) error {
	if !d.IsAvailable() {
		return ErrNotAvailable
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	title := sanitizeForAppleScript(notification.Title)
	body := sanitizeForAppleScript(notification.Body)
	subtitle := sanitizeForAppleScript(d.config.AppName)

	script := fmt.Sprintf(`display notification "%s" with title "%s" subtitle "%s"`,
		body, title, subtitle)
	if !notification.Silent {
		script += ` sound name "default"`
	}

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %v (output: %s)", ErrNotificationFailed, err, string(output))
	}
	return nil
}

// SupportsRichToast reports rich markup support. osascript notifications
// have no progress bar or custom icon slot.
func (d *darwinNotifier) SupportsRichToast() bool {
	return false
}

// IsAvailable checks that osascript is present.
func (d *darwinNotifier) IsAvailable() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

// Close is a no-op on macOS.
func (d *darwinNotifier) Close() error {
	return nil
}

// sanitizeForAppleScript escapes and strips characters that could break out
// of an AppleScript string literal.
func sanitizeForAppleScript(s string) string {
	if len(s) > maxAppleScriptStringLength {
		s = s[:maxAppleScriptStringLength]
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return s
}
