//go:build windows

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// maxTextLength bounds text interpolated into the PowerShell script.
const maxTextLength = 500

// windowsNotifier implements Notifier for Windows using PowerShell and the
// WinRT toast API. Rich toast markup is passed through verbatim, so
// progress bars and custom icons render natively.
type windowsNotifier struct {
	config Config
}

func newPlatformNotifier(config Config) (Notifier, error) {
	return &windowsNotifier{config: config}, nil
}

// Send shows a toast notification.
func (w *windowsNotifier) Send(ctx context.Context, notification Notification) error {
	if !w.IsAvailable() {
		return ErrNotAvailable
	}

	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	script := w.buildScript(notification)
	cmd := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %v (output: %s)", ErrNotificationFailed, err, string(output))
	}
	return nil
}

// SupportsRichToast reports rich markup support. Always true on Windows.
func (w *windowsNotifier) SupportsRichToast() bool {
	return true
}

// IsAvailable checks that PowerShell is present.
func (w *windowsNotifier) IsAvailable() bool {
	_, err := exec.LookPath("powershell.exe")
	return err == nil
}

// Close is a no-op on Windows.
func (w *windowsNotifier) Close() error {
	return nil
}

// buildScript builds the PowerShell script that loads the toast XML and
// shows it under the configured app ID.
func (w *windowsNotifier) buildScript(n Notification) string {
	xml := n.ToastXML
	if xml == "" {
		xml = basicToastXML(n)
	}

	// Single quotes delimit PowerShell strings; double them inside.
	xml = strings.ReplaceAll(xml, "'", "''")

	return fmt.Sprintf(`
$ErrorActionPreference = 'Stop'
[void][Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime]
[void][Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime]

$template = '%s'
$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)

$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s')
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
$notifier.Show($toast)
`, xml, sanitizeForPowerShell(w.config.AppID))
}

// basicToastXML builds minimal ToastGeneric markup from the notification
// fields when no pre-rendered markup was supplied.
func basicToastXML(n Notification) string {
	var binding strings.Builder
	if n.IconPath != "" {
		fmt.Fprintf(&binding, "<image placement=\"appLogoOverride\" src=\"%s\"/>", escapeXML(n.IconPath))
	}
	fmt.Fprintf(&binding, "<text>%s</text><text>%s</text>", escapeXML(n.Title), escapeXML(n.Body))

	audio := ""
	if n.Silent {
		audio = `<audio silent="true"/>`
	}

	return fmt.Sprintf(`<toast><visual><binding template="ToastGeneric">%s</binding></visual>%s</toast>`,
		binding.String(), audio)
}

// sanitizeForPowerShell strips characters that could break out of a
// single-quoted PowerShell string.
func sanitizeForPowerShell(s string) string {
	if len(s) > maxTextLength {
		s = s[:maxTextLength]
	}
	s = strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "'", "''")
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ";", "")
	return s
}

// escapeXML escapes XML entities; & must be escaped first.
func escapeXML(s string) string {
	if len(s) > maxTextLength {
		s = s[:maxTextLength]
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
