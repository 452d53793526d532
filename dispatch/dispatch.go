// Package dispatch orchestrates the notification pipeline: preference
// gating, payload assembly, icon materialization, toast rendering, platform
// delivery, and the companion sound effect.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/questdeck/notify-core/icon"
	"github.com/questdeck/notify-core/intent"
	"github.com/questdeck/notify-core/logutil"
	"github.com/questdeck/notify-core/notify"
	"github.com/questdeck/notify-core/payload"
	"github.com/questdeck/notify-core/sound"
	"github.com/questdeck/notify-core/store"
	"github.com/questdeck/notify-core/toast"
)

// PreferenceSource provides user notification preferences.
// Implemented by store.Store; a nil result means no preferences have been
// saved, which disables every optional notification feature.
type PreferenceSource interface {
	GetPreferences(ctx context.Context) (*store.Preferences, error)
}

// PayloadBuilder builds notification payloads from intents.
// Implemented by payload.Builder.
type PayloadBuilder interface {
	Build(ctx context.Context, in intent.Intent) (*payload.Payload, error)
}

// Options configures a Dispatcher.
type Options struct {
	// TempDir receives materialized in-memory icons. Required.
	TempDir string

	// AppIconPath and TrayIconPath locate the two bundled icon assets.
	AppIconPath  string
	TrayIconPath string

	// SoundPath is the achievement sound effect file. Empty disables the
	// companion sound.
	SoundPath string
}

// Dispatcher runs the notification pipeline. Each Dispatch call owns its
// payload and icon handle; concurrent dispatches share nothing but the
// filesystem temp directory.
type Dispatcher struct {
	prefs    PreferenceSource
	builder  PayloadBuilder
	notifier notify.Notifier
	sounds   sound.Player
	opts     Options
}

// New creates a Dispatcher. sounds may be nil to disable sound effects.
func New(prefs PreferenceSource, builder PayloadBuilder, notifier notify.Notifier, sounds sound.Player, opts Options) *Dispatcher {
	return &Dispatcher{
		prefs:    prefs,
		builder:  builder,
		notifier: notifier,
		sounds:   sounds,
		opts:     opts,
	}
}

// Publish dispatches an intent in the background. Fire-and-forget: failures
// are logged and counted, never returned. Callers that need the error use
// Dispatch directly.
func (d *Dispatcher) Publish(in intent.Intent) {
	go func() {
		if err := d.Dispatch(context.Background(), in); err != nil {
			logutil.Error("notification dispatch failed", "kind", kindOf(in), "error", err)
		}
	}()
}

// Dispatch runs the pipeline for a single intent: apply the suppression
// gate, build the payload, render rich markup where the platform supports
// it, hand off to platform delivery, and trigger the companion sound effect
// for achievement intents.
func (d *Dispatcher) Dispatch(ctx context.Context, in intent.Intent) error {
	kind := kindOf(in)
	timer := prometheusTimer(kind)
	defer timer()

	suppressed, err := d.gated(ctx, in)
	if err != nil {
		dispatchErrors.WithLabelValues(kind, "preferences").Inc()
		return err
	}
	if suppressed {
		suppressedTotal.WithLabelValues(kind, "preference").Inc()
		logutil.Debug("notification suppressed by preference", "kind", kind)
		return nil
	}

	p, err := d.builder.Build(ctx, in)
	if err != nil {
		dispatchErrors.WithLabelValues(kind, "build").Inc()
		return fmt.Errorf("failed to build payload: %w", err)
	}
	if p == nil {
		// Valid terminal outcome: the intent produces no notification.
		suppressedTotal.WithLabelValues(kind, "empty").Inc()
		return nil
	}

	iconPath := d.iconPath(p.Icon)

	n := notify.Notification{
		Title:    p.Title,
		Body:     p.Body,
		IconPath: iconPath,
		Silent:   p.Silent,
	}
	if d.notifier.SupportsRichToast() && (p.Progress != nil || iconPath != "" || p.Silent) {
		n.ToastXML = toast.Render(p, iconPath)
	}

	if err := d.notifier.Send(ctx, n); err != nil {
		dispatchErrors.WithLabelValues(kind, "send").Inc()
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	dispatchedTotal.WithLabelValues(kind).Inc()
	logutil.Debug("notification dispatched", "kind", kind, "silent", p.Silent)

	if intent.IsAchievement(in) {
		d.playSound(ctx)
	}
	return nil
}

// gated reports whether the intent is suppressed before any payload work.
// Only download-complete notifications carry a preference gate; an absent
// preferences row counts as disabled.
func (d *Dispatcher) gated(ctx context.Context, in intent.Intent) (bool, error) {
	if _, ok := in.(intent.DownloadComplete); !ok {
		return false, nil
	}
	prefs, err := d.prefs.GetPreferences(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs == nil || !prefs.DownloadNotificationsEnabled, nil
}

// iconPath maps an icon handle to a file path for platform delivery.
// Sentinels resolve to the bundled assets; decoded frames are written to the
// temp directory. Any materialization failure degrades to no custom icon.
func (d *Dispatcher) iconPath(h icon.Handle) string {
	switch h.Kind {
	case icon.KindDefault:
		return d.opts.AppIconPath
	case icon.KindTray:
		return d.opts.TrayIconPath
	case icon.KindNone:
		return ""
	}
	p, err := icon.Materialize(h, d.opts.TempDir)
	if err != nil {
		logutil.Warn("failed to materialize icon, showing notification without one", "error", err)
		return ""
	}
	return p
}

// playSound triggers the achievement sound effect. Best effort: playback
// failures never fail the dispatch.
func (d *Dispatcher) playSound(ctx context.Context) {
	if d.sounds == nil || d.opts.SoundPath == "" || !sound.Supported() {
		return
	}
	if err := d.sounds.Play(ctx, d.opts.SoundPath); err != nil {
		logutil.Warn("failed to play achievement sound", "path", d.opts.SoundPath, "error", err)
		return
	}
	soundPlayedTotal.Inc()
}

// prometheusTimer records dispatch duration on completion.
func prometheusTimer(kind string) func() {
	start := time.Now()
	return func() {
		dispatchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

// kindOf names an intent for logs and metric labels.
func kindOf(in intent.Intent) string {
	switch in.(type) {
	case intent.DownloadComplete:
		return "download_complete"
	case intent.UpdateReady:
		return "update_ready"
	case intent.AchievementsUnlocked:
		return "achievements_unlocked"
	case intent.AchievementsBatch:
		return "achievements_batch"
	case intent.FriendRequest:
		return "friend_request"
	default:
		return "unknown"
	}
}
