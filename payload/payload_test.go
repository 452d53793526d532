package payload

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questdeck/notify-core/icon"
	"github.com/questdeck/notify-core/intent"
	"github.com/questdeck/notify-core/locale"
)

type fakeGameIcons struct {
	handle icon.Handle
}

func (f *fakeGameIcons) GameIcon(_ context.Context, _ int64) icon.Handle {
	return f.handle
}

type fakeFetcher struct {
	handles map[string]icon.Handle
	err     error
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (icon.Handle, error) {
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return icon.NoIcon, f.err
	}
	if h, ok := f.handles[url]; ok {
		return h, nil
	}
	return icon.NoIcon, nil
}

func newTestBuilder(games *fakeGameIcons, remote *fakeFetcher) *Builder {
	if games == nil {
		games = &fakeGameIcons{handle: icon.NoIcon}
	}
	if remote == nil {
		remote = &fakeFetcher{}
	}
	return NewBuilder(locale.NewBundle(), games, remote)
}

func TestBuild_DownloadComplete(t *testing.T) {
	t.Run("game without stored icon keeps no icon", func(t *testing.T) {
		b := newTestBuilder(&fakeGameIcons{handle: icon.NoIcon}, nil)

		p, err := b.Build(context.Background(), intent.DownloadComplete{GameID: 1, GameTitle: "Hollow Depths"})

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Download complete", p.Title)
		assert.Equal(t, "Hollow Depths is ready to install", p.Body)
		assert.True(t, p.Icon.IsNone())
		assert.False(t, p.Silent)
		assert.Nil(t, p.Progress)
	})

	t.Run("game with stored icon carries it", func(t *testing.T) {
		b := newTestBuilder(&fakeGameIcons{handle: icon.FromFile("/tmp/game.png")}, nil)

		p, err := b.Build(context.Background(), intent.DownloadComplete{GameID: 1, GameTitle: "Hollow Depths"})

		require.NoError(t, err)
		assert.Equal(t, icon.KindFile, p.Icon.Kind)
	})
}

func TestBuild_UpdateReady(t *testing.T) {
	b := newTestBuilder(nil, nil)

	p, err := b.Build(context.Background(), intent.UpdateReady{Version: "2.4.0"})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "New update available: v2.4.0", p.Title)
	assert.Equal(t, "Restart to install the update", p.Body)
	assert.Equal(t, icon.TrayIcon, p.Icon)
	assert.Nil(t, p.Progress)
}

func TestBuild_SingleAchievement(t *testing.T) {
	remote := &fakeFetcher{}
	b := newTestBuilder(nil, remote)

	p, err := b.Build(context.Background(), intent.AchievementsUnlocked{
		Achievements:  []intent.Achievement{{DisplayName: "First Blood"}},
		UnlockedCount: 3,
		TotalCount:    10,
		GameTitle:     "X",
	})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Achievement unlocked", p.Title)
	assert.Equal(t, "First Blood", p.Body)
	assert.True(t, p.Silent)
	require.NotNil(t, p.Progress)
	assert.Equal(t, 0.3, p.Progress.Value)
	assert.Equal(t, "3/10 achievements", p.Progress.Label)
	// Absent icon URL degrades to the bundled default, never to no icon.
	assert.Equal(t, icon.DefaultIcon, p.Icon)
}

func TestBuild_MultipleAchievements(t *testing.T) {
	remote := &fakeFetcher{handles: map[string]icon.Handle{
		"https://cdn.example.com/game.png": icon.FromFile("/tmp/game.png"),
	}}
	b := newTestBuilder(nil, remote)

	p, err := b.Build(context.Background(), intent.AchievementsUnlocked{
		Achievements: []intent.Achievement{
			{DisplayName: "First Blood", IconURL: "https://cdn.example.com/a1.png"},
			{DisplayName: "Untouchable", IconURL: "https://cdn.example.com/a2.png"},
			{DisplayName: "Marathon", IconURL: "https://cdn.example.com/a3.png"},
		},
		UnlockedCount: 5,
		TotalCount:    20,
		GameTitle:     "Hollow Depths",
		GameIconURL:   "https://cdn.example.com/game.png",
	})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "3 achievements unlocked for Hollow Depths", p.Title)
	assert.Equal(t, "First Blood, Untouchable, Marathon", p.Body)
	assert.True(t, p.Silent)
	require.NotNil(t, p.Progress)
	assert.Equal(t, 0.25, p.Progress.Value)

	// The game icon is fetched, not any single achievement's icon.
	assert.Equal(t, []string{"https://cdn.example.com/game.png"}, remote.fetched)
	assert.Equal(t, icon.KindFile, p.Icon.Kind)
}

func TestBuild_AchievementFetchFailureFallsBackToDefault(t *testing.T) {
	remote := &fakeFetcher{err: errors.New("connection reset")}
	b := newTestBuilder(nil, remote)

	p, err := b.Build(context.Background(), intent.AchievementsUnlocked{
		Achievements:  []intent.Achievement{{DisplayName: "First Blood", IconURL: "https://cdn.example.com/a1.png"}},
		UnlockedCount: 1,
		TotalCount:    4,
	})

	require.NoError(t, err)
	assert.Equal(t, icon.DefaultIcon, p.Icon)
}

func TestBuild_ZeroTotalOmitsProgress(t *testing.T) {
	b := newTestBuilder(nil, nil)

	p, err := b.Build(context.Background(), intent.AchievementsUnlocked{
		Achievements:  []intent.Achievement{{DisplayName: "First Blood"}},
		UnlockedCount: 1,
		TotalCount:    0,
	})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.Progress)
	assert.True(t, p.Silent)
}

func TestBuild_EmptyAchievementListIsAnError(t *testing.T) {
	b := newTestBuilder(nil, nil)

	_, err := b.Build(context.Background(), intent.AchievementsUnlocked{TotalCount: 5})

	assert.Error(t, err)
}

func TestBuild_AchievementsBatch(t *testing.T) {
	b := newTestBuilder(nil, nil)

	p, err := b.Build(context.Background(), intent.AchievementsBatch{AchievementCount: 7, GameCount: 3})

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Achievement unlocked", p.Title)
	assert.Equal(t, "7 new achievements unlocked across 3 games", p.Body)
	assert.Equal(t, icon.DefaultIcon, p.Icon)
	assert.True(t, p.Silent)
	assert.Nil(t, p.Progress)
}

func TestBuild_FriendRequestProducesNothing(t *testing.T) {
	b := newTestBuilder(nil, nil)

	p, err := b.Build(context.Background(), intent.FriendRequest{})

	require.NoError(t, err)
	assert.Nil(t, p)
}
