// Package icon resolves notification icons from locally stored game records
// and remote URLs. Resolution is best effort: any recoverable failure
// degrades to a sentinel handle so a notification is never blocked by a
// missing or broken icon.
package icon

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	ico "github.com/sergeymakinen/go-ico"

	"github.com/questdeck/notify-core/logutil"
)

// MinFrameWidth is the quality floor for stored game icons. Frames narrower
// than this are rejected even when they are the only frames present.
const MinFrameWidth = 128

// Kind identifies the concrete source of an icon handle.
type Kind int

const (
	// KindNone means no custom icon; platform delivery renders without one.
	KindNone Kind = iota
	// KindDefault refers to the bundled application icon.
	KindDefault
	// KindTray refers to the bundled tray icon.
	KindTray
	// KindFile refers to an image file on disk.
	KindFile
	// KindImage holds a decoded in-memory image.
	KindImage
)

// Handle is an abstract reference to a notification icon. A handle lives for
// a single notification dispatch and is never shared across dispatches.
type Handle struct {
	Kind Kind
	Path string      // set for KindFile
	Img  image.Image // set for KindImage
}

// Sentinel handles.
var (
	NoIcon      = Handle{Kind: KindNone}
	DefaultIcon = Handle{Kind: KindDefault}
	TrayIcon    = Handle{Kind: KindTray}
)

// FromFile returns a handle referring to an image file on disk.
func FromFile(path string) Handle {
	return Handle{Kind: KindFile, Path: path}
}

// FromImage returns a handle holding a decoded image.
func FromImage(img image.Image) Handle {
	return Handle{Kind: KindImage, Img: img}
}

// IsNone reports whether the handle carries no custom icon.
func (h Handle) IsNone() bool {
	return h.Kind == KindNone
}

// DecodeError describes a failure to extract a usable icon frame from a
// stored data URI. Callers are expected to map it to a fallback icon.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("icon decode: %s: %v", e.Reason, e.Err)
	}
	return "icon decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// GameSource provides access to stored game records. Implemented by
// store.Store; kept narrow so tests can substitute a fake.
type GameSource interface {
	// GameIconURL returns the stored icon data URI for a game, or "" when
	// the game or its icon field is absent.
	GameIconURL(ctx context.Context, gameID int64) (string, error)
}

// Resolver resolves icons for locally stored games.
type Resolver struct {
	games GameSource
}

// NewResolver creates a Resolver backed by the given game source.
func NewResolver(games GameSource) *Resolver {
	return &Resolver{games: games}
}

// GameIcon resolves the stored icon for a game. Every failure mode (absent
// game, absent icon field, malformed data URI, no qualifying frame) resolves
// to NoIcon; the caller substitutes whatever fallback fits the notification.
func (r *Resolver) GameIcon(ctx context.Context, gameID int64) Handle {
	uri, err := r.games.GameIconURL(ctx, gameID)
	if err != nil {
		logutil.Debug("game icon lookup failed", "gameID", gameID, "error", err)
		return NoIcon
	}
	if uri == "" {
		return NoIcon
	}

	h, err := ParseDataURI(uri)
	if err != nil {
		logutil.Debug("game icon decode failed", "gameID", gameID, "error", err)
		return NoIcon
	}
	return h
}

// ParseDataURI decodes a base64 ICO data URI and selects the first frame at
// least MinFrameWidth pixels wide. It returns a DecodeError when the payload
// is malformed or no frame qualifies.
func ParseDataURI(uri string) (Handle, error) {
	parts := strings.SplitN(uri, "base64,", 2)
	if len(parts) != 2 {
		return NoIcon, &DecodeError{Reason: "not a base64 data URI"}
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return NoIcon, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}

	frames, err := ico.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		return NoIcon, &DecodeError{Reason: "invalid ICO payload", Err: err}
	}

	for _, frame := range frames {
		if frame.Bounds().Dx() >= MinFrameWidth {
			return FromImage(frame), nil
		}
	}
	return NoIcon, &DecodeError{Reason: fmt.Sprintf("no frame at least %dpx wide", MinFrameWidth)}
}
