package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAchievement(t *testing.T) {
	tests := []struct {
		name string
		in   Intent
		want bool
	}{
		{"achievements unlocked", AchievementsUnlocked{}, true},
		{"achievements batch", AchievementsBatch{}, true},
		{"download complete", DownloadComplete{}, false},
		{"update ready", UpdateReady{}, false},
		{"friend request", FriendRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAchievement(tt.in))
		})
	}
}
