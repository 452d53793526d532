// Package toast renders composed notification payloads into Windows toast
// XML. Rendering is only needed when the target platform supports rich
// markup (custom icons, progress bars); plain platforms receive the payload
// fields directly.
package toast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/questdeck/notify-core/payload"
)

// maxTextLength bounds title and body text embedded in the markup.
const maxTextLength = 500

// Render produces the toast XML document for a payload. iconPath is the
// materialized icon file; when empty no image element is emitted. The
// progress value is clamped to [0, 1] so malformed counts can never leak
// NaN or out-of-range percentages into the markup.
func Render(p *payload.Payload, iconPath string) string {
	var binding strings.Builder

	if iconPath != "" {
		fmt.Fprintf(&binding, "\n            <image placement=\"appLogoOverride\" src=\"%s\"/>", escapeXML(iconPath))
	}
	fmt.Fprintf(&binding, "\n            <text>%s</text>", escapeXML(p.Title))
	fmt.Fprintf(&binding, "\n            <text>%s</text>", escapeXML(p.Body))
	if p.Progress != nil {
		fmt.Fprintf(&binding, "\n            <progress value=\"%s\" status=\"%s\"/>",
			formatProgress(p.Progress.Value), escapeXML(p.Progress.Label))
	}

	audio := ""
	if p.Silent {
		audio = "\n    <audio silent=\"true\"/>"
	}

	return fmt.Sprintf(`<toast>
    <visual>
        <binding template="ToastGeneric">%s
        </binding>
    </visual>%s
</toast>`, binding.String(), audio)
}

// formatProgress clamps v to [0, 1] and formats it without trailing zeros.
func formatProgress(v float64) string {
	if v != v || v < 0 { // NaN or negative
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeXML escapes XML entities and strips control characters. The order
// matters: & must be escaped before the other entities.
func escapeXML(s string) string {
	if len(s) > maxTextLength {
		s = s[:maxTextLength]
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
	return s
}
