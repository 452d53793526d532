// Package locale resolves localized notification strings.
//
// The notification pipeline only needs "look up string for key + namespace +
// variables"; the full localization engine lives elsewhere in the
// application. Translator is the narrow contract, and Bundle is the built-in
// English table used by default and in tests.
package locale

import "strings"

// Vars holds interpolation variables for a translated string.
type Vars map[string]string

// Translator resolves a localized string for a namespace and key.
// Implementations must always return a non-empty string for known keys.
type Translator interface {
	T(ns, key string, vars Vars) string
}

// Namespaces used by the notification pipeline.
const (
	NSNotifications = "notifications"
	NSAchievement   = "achievement"
)

// Bundle is an in-memory string table with {{var}} interpolation,
// keyed by namespace then key.
type Bundle struct {
	tables map[string]map[string]string
}

// NewBundle returns a Bundle preloaded with the English notification strings.
func NewBundle() *Bundle {
	return &Bundle{tables: map[string]map[string]string{
		NSNotifications: {
			"download_complete":         "Download complete",
			"game_ready_to_install":     "{{title}} is ready to install",
			"new_update_available":      "New update available: v{{version}}",
			"restart_to_install_update": "Restart to install the update",
		},
		NSAchievement: {
			"achievement_unlocked":           "Achievement unlocked",
			"achievements_unlocked_for_game": "{{achievementCount}} achievements unlocked for {{gameTitle}}",
			"new_achievements_unlocked":      "{{achievementCount}} new achievements unlocked across {{gameCount}} games",
			"achievement_progress":           "{{unlockedCount}}/{{totalCount}} achievements",
		},
	}}
}

// T resolves key in ns and interpolates vars. Unknown keys return the key
// itself so a missing translation is visible rather than silently blank.
func (b *Bundle) T(ns, key string, vars Vars) string {
	table, ok := b.tables[ns]
	if !ok {
		return key
	}
	s, ok := table[key]
	if !ok {
		return key
	}
	return interpolate(s, vars)
}

func interpolate(s string, vars Vars) string {
	if len(vars) == 0 {
		return s
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
