// Package payload assembles ready-to-display notification content from typed
// intents. The builder owns all branching between intent kinds; icon
// resolution and localization are injected collaborators.
package payload

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/questdeck/notify-core/icon"
	"github.com/questdeck/notify-core/intent"
	"github.com/questdeck/notify-core/locale"
	"github.com/questdeck/notify-core/logutil"
)

// Progress describes achievement completion shown as a progress bar.
type Progress struct {
	// Value is the completion fraction in [0, 1].
	Value float64

	// Label is the human-readable form shown instead of a percentage.
	Label string
}

// Payload is fully resolved notification content. A payload and its icon
// handle belong to the dispatch call that created them.
type Payload struct {
	Title    string
	Body     string
	Icon     icon.Handle
	Silent   bool
	Progress *Progress
}

// GameIconResolver resolves icons for locally stored games.
// Implemented by icon.Resolver.
type GameIconResolver interface {
	GameIcon(ctx context.Context, gameID int64) icon.Handle
}

// RemoteIconFetcher downloads remote icon images.
// Implemented by icon.Downloader.
type RemoteIconFetcher interface {
	Fetch(ctx context.Context, url string) (icon.Handle, error)
}

// Builder builds notification payloads from intents.
type Builder struct {
	translator locale.Translator
	games      GameIconResolver
	remote     RemoteIconFetcher
}

// NewBuilder creates a Builder.
func NewBuilder(translator locale.Translator, games GameIconResolver, remote RemoteIconFetcher) *Builder {
	return &Builder{
		translator: translator,
		games:      games,
		remote:     remote,
	}
}

// Build produces the payload for an intent. A nil payload with a nil error
// means the intent produces no notification, which is a valid terminal
// outcome (currently only FriendRequest). Preference gating is not applied
// here; the dispatcher decides whether a built payload is shown.
func (b *Builder) Build(ctx context.Context, in intent.Intent) (*Payload, error) {
	switch v := in.(type) {
	case intent.DownloadComplete:
		return b.buildDownloadComplete(ctx, v), nil
	case intent.UpdateReady:
		return b.buildUpdateReady(v), nil
	case intent.AchievementsUnlocked:
		return b.buildAchievementsUnlocked(ctx, v)
	case intent.AchievementsBatch:
		return b.buildAchievementsBatch(v), nil
	case intent.FriendRequest:
		// No notification is produced for friend requests yet.
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notification intent %T", in)
	}
}

func (b *Builder) buildDownloadComplete(ctx context.Context, v intent.DownloadComplete) *Payload {
	return &Payload{
		Title: b.translator.T(locale.NSNotifications, "download_complete", nil),
		Body: b.translator.T(locale.NSNotifications, "game_ready_to_install", locale.Vars{
			"title": v.GameTitle,
		}),
		// NoIcon stays NoIcon here: the platform renders without a
		// custom icon rather than with the bundled one.
		Icon: b.games.GameIcon(ctx, v.GameID),
	}
}

func (b *Builder) buildUpdateReady(v intent.UpdateReady) *Payload {
	return &Payload{
		Title: b.translator.T(locale.NSNotifications, "new_update_available", locale.Vars{
			"version": v.Version,
		}),
		Body: b.translator.T(locale.NSNotifications, "restart_to_install_update", nil),
		Icon: icon.TrayIcon,
	}
}

func (b *Builder) buildAchievementsUnlocked(ctx context.Context, v intent.AchievementsUnlocked) (*Payload, error) {
	if len(v.Achievements) == 0 {
		return nil, fmt.Errorf("achievement intent carries no achievements")
	}

	var p *Payload
	if len(v.Achievements) == 1 {
		a := v.Achievements[0]
		p = &Payload{
			Title: b.translator.T(locale.NSAchievement, "achievement_unlocked", nil),
			Body:  a.DisplayName,
			Icon:  b.fetchOrDefault(ctx, a.IconURL),
		}
	} else {
		names := make([]string, len(v.Achievements))
		for i, a := range v.Achievements {
			names[i] = a.DisplayName
		}
		p = &Payload{
			Title: b.translator.T(locale.NSAchievement, "achievements_unlocked_for_game", locale.Vars{
				"gameTitle":        v.GameTitle,
				"achievementCount": strconv.Itoa(len(v.Achievements)),
			}),
			Body: strings.Join(names, ", "),
			Icon: b.fetchOrDefault(ctx, v.GameIconURL),
		}
	}

	p.Silent = true
	p.Progress = b.progressFor(v.UnlockedCount, v.TotalCount)
	return p, nil
}

func (b *Builder) buildAchievementsBatch(v intent.AchievementsBatch) *Payload {
	return &Payload{
		Title: b.translator.T(locale.NSAchievement, "achievement_unlocked", nil),
		Body: b.translator.T(locale.NSAchievement, "new_achievements_unlocked", locale.Vars{
			"achievementCount": strconv.Itoa(v.AchievementCount),
			"gameCount":        strconv.Itoa(v.GameCount),
		}),
		Icon:   icon.DefaultIcon,
		Silent: true,
	}
}

// progressFor computes the completion descriptor. A non-positive total would
// make the fraction undefined, so the descriptor is omitted entirely in that
// case and the toast renders without a progress bar.
func (b *Builder) progressFor(unlocked, total int) *Progress {
	if total <= 0 {
		logutil.Warn("achievement intent carries no total count, omitting progress", "unlocked", unlocked)
		return nil
	}
	return &Progress{
		Value: float64(unlocked) / float64(total),
		Label: b.translator.T(locale.NSAchievement, "achievement_progress", locale.Vars{
			"unlockedCount": strconv.Itoa(unlocked),
			"totalCount":    strconv.Itoa(total),
		}),
	}
}

// fetchOrDefault downloads a remote icon, degrading to the bundled default
// on absence or any fetch failure.
func (b *Builder) fetchOrDefault(ctx context.Context, url string) icon.Handle {
	h, err := b.remote.Fetch(ctx, url)
	if err != nil {
		logutil.Debug("remote icon fetch failed, using default icon", "url", url, "error", err)
		return icon.DefaultIcon
	}
	if h.IsNone() {
		return icon.DefaultIcon
	}
	return h
}
