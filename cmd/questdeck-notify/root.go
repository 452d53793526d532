package main

import (
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/questdeck/notify-core/cache"
	"github.com/questdeck/notify-core/config"
	"github.com/questdeck/notify-core/dispatch"
	"github.com/questdeck/notify-core/icon"
	"github.com/questdeck/notify-core/locale"
	"github.com/questdeck/notify-core/logutil"
	"github.com/questdeck/notify-core/notify"
	"github.com/questdeck/notify-core/payload"
	"github.com/questdeck/notify-core/sound"
	"github.com/questdeck/notify-core/store"
	"github.com/questdeck/notify-core/version"
)

func newRootCommand() *cobra.Command {
	var (
		debug      bool
		structured bool
	)

	root := &cobra.Command{
		Use:           "questdeck-notify",
		Short:         "Dispatch Questdeck desktop notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logutil.Setup(debug, structured)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&structured, "structured-logs", false, "Emit JSON logs")

	root.AddCommand(newSendCommand())
	root.AddCommand(version.NewCommand(version.New("questdeck-notify")))
	return root
}

// pipeline bundles the wired notification components for a CLI invocation.
type pipeline struct {
	dispatcher *dispatch.Dispatcher
	store      *store.Store
	notifier   notify.Notifier
}

func (p *pipeline) close() {
	_ = p.notifier.Close()
	_ = p.store.Close()
}

// buildPipeline wires config, store, icon resolution, payload building,
// platform delivery and sound into a dispatcher.
func buildPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New(notify.Config{
		AppName: cfg.AppName,
		AppID:   cfg.AppID,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var iconCache *cache.Store
	if cfg.IconCache.Dir != "" {
		iconCache = cache.NewStore(cache.Options{
			Dir: cfg.IconCache.Dir,
			TTL: time.Duration(cfg.IconCache.TTLHours) * time.Hour,
		})
	}

	downloader := icon.NewDownloader(icon.DownloaderOptions{
		TempDir:         cfg.TempDir,
		Cache:           iconCache,
		RateLimit:       rate.Limit(cfg.Download.RatePerSecond),
		RateBurst:       cfg.Download.Burst,
		BreakerFailures: cfg.Download.BreakerFailures,
	})

	builder := payload.NewBuilder(locale.NewBundle(), icon.NewResolver(st), downloader)

	var player sound.Player
	if cfg.SoundPath != "" && sound.Supported() {
		player = sound.NewBeepPlayer()
	}

	dispatcher := dispatch.New(st, builder, notifier, player, dispatch.Options{
		TempDir:      cfg.TempDir,
		AppIconPath:  cfg.AppIconPath,
		TrayIconPath: cfg.TrayIconPath,
		SoundPath:    cfg.SoundPath,
	})

	return &pipeline{dispatcher: dispatcher, store: st, notifier: notifier}, nil
}
