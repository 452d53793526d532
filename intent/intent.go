// Package intent defines the typed notification requests accepted by the
// notification pipeline. Each intent kind is a distinct value type behind a
// sealed interface, so payload construction can branch with an exhaustive
// type switch instead of inspecting loosely shaped data.
package intent

// Intent is the closed set of notification requests. Only types in this
// package implement it.
type Intent interface {
	isIntent()
}

// Achievement is a single unlocked achievement as reported by the
// achievement watcher.
type Achievement struct {
	// DisplayName is the human-readable achievement name.
	DisplayName string

	// IconURL is an optional remote icon for the achievement.
	IconURL string
}

// DownloadComplete reports that a game download finished and the game is
// ready to install.
type DownloadComplete struct {
	GameID    int64
	GameTitle string
}

// UpdateReady reports that an application update has been downloaded and a
// restart will install it.
type UpdateReady struct {
	Version string
}

// AchievementsUnlocked reports one or more achievements unlocked in a single
// game, together with the game's overall completion counts.
type AchievementsUnlocked struct {
	Achievements  []Achievement
	UnlockedCount int
	TotalCount    int
	GameTitle     string
	GameIconURL   string
}

// AchievementsBatch summarizes achievements unlocked across several games at
// once, without enumerating individual achievements.
type AchievementsBatch struct {
	AchievementCount int
	GameCount        int
}

// FriendRequest reports an incoming friend request. It currently produces no
// notification; the pipeline treats it as a valid empty outcome.
type FriendRequest struct{}

func (DownloadComplete) isIntent()     {}
func (UpdateReady) isIntent()          {}
func (AchievementsUnlocked) isIntent() {}
func (AchievementsBatch) isIntent()    {}
func (FriendRequest) isIntent()        {}

// IsAchievement reports whether the intent is one of the achievement kinds,
// which carry forced-silent payloads and trigger the companion sound effect.
func IsAchievement(in Intent) bool {
	switch in.(type) {
	case AchievementsUnlocked, AchievementsBatch:
		return true
	}
	return false
}
