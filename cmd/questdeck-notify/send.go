package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questdeck/notify-core/intent"
)

func newSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Dispatch a notification",
	}
	cmd.AddCommand(
		newSendDownloadCommand(),
		newSendUpdateCommand(),
		newSendAchievementCommand(),
		newSendBatchCommand(),
		newSendFriendRequestCommand(),
	)
	return cmd
}

// dispatchIntent wires the pipeline and runs a single synchronous dispatch
// so CLI users see errors directly.
func dispatchIntent(cmd *cobra.Command, in intent.Intent) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()
	return p.dispatcher.Dispatch(cmd.Context(), in)
}

func newSendDownloadCommand() *cobra.Command {
	var (
		gameID int64
		title  string
	)
	cmd := &cobra.Command{
		Use:   "download-complete",
		Short: "Notify that a game download finished",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchIntent(cmd, intent.DownloadComplete{GameID: gameID, GameTitle: title})
		},
	}
	cmd.Flags().Int64Var(&gameID, "game-id", 0, "Game id in the local database")
	cmd.Flags().StringVar(&title, "title", "", "Game title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newSendUpdateCommand() *cobra.Command {
	var ver string
	cmd := &cobra.Command{
		Use:   "update-ready",
		Short: "Notify that an application update is ready to install",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchIntent(cmd, intent.UpdateReady{Version: ver})
		},
	}
	cmd.Flags().StringVar(&ver, "version", "", "Update version")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newSendAchievementCommand() *cobra.Command {
	var (
		names       []string
		iconURLs    []string
		unlocked    int
		total       int
		gameTitle   string
		gameIconURL string
	)
	cmd := &cobra.Command{
		Use:   "achievement",
		Short: "Notify that one or more achievements were unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				return fmt.Errorf("at least one --name is required")
			}
			achievements := make([]intent.Achievement, len(names))
			for i, name := range names {
				a := intent.Achievement{DisplayName: name}
				if i < len(iconURLs) {
					a.IconURL = iconURLs[i]
				}
				achievements[i] = a
			}
			return dispatchIntent(cmd, intent.AchievementsUnlocked{
				Achievements:  achievements,
				UnlockedCount: unlocked,
				TotalCount:    total,
				GameTitle:     gameTitle,
				GameIconURL:   gameIconURL,
			})
		},
	}
	cmd.Flags().StringArrayVar(&names, "name", nil, "Achievement display name (repeatable)")
	cmd.Flags().StringArrayVar(&iconURLs, "icon-url", nil, "Achievement icon URL, matched by position (repeatable)")
	cmd.Flags().IntVar(&unlocked, "unlocked", 0, "Total achievements unlocked for the game")
	cmd.Flags().IntVar(&total, "total", 0, "Total achievements available for the game")
	cmd.Flags().StringVar(&gameTitle, "game-title", "", "Game title")
	cmd.Flags().StringVar(&gameIconURL, "game-icon-url", "", "Game icon URL, used when several achievements unlock at once")
	return cmd
}

func newSendBatchCommand() *cobra.Command {
	var (
		achievementCount int
		gameCount        int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Notify about achievements unlocked across several games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchIntent(cmd, intent.AchievementsBatch{
				AchievementCount: achievementCount,
				GameCount:        gameCount,
			})
		},
	}
	cmd.Flags().IntVar(&achievementCount, "achievements", 0, "Number of achievements unlocked")
	cmd.Flags().IntVar(&gameCount, "games", 0, "Number of games involved")
	return cmd
}

func newSendFriendRequestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "friend-request",
		Short: "Dispatch a friend request intent (currently produces no notification)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchIntent(cmd, intent.FriendRequest{})
		},
	}
}
