package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/jumptap/internal/database/repository"
	"github.com/jask/jumptap/internal/jump"
	"github.com/jask/jumptap/internal/logger"
	"github.com/jask/jumptap/internal/metrics"
	"github.com/jask/jumptap/internal/sound"
	"github.com/jask/jumptap/internal/tui"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the jumper row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context())
		},
	}
}

func runApp(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, jumpers, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var observers jump.Observers

	if cfg.Metrics.Addr != "" {
		m := metrics.NewManager()
		observers = append(observers, m)
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error(ctx, "metrics server stopped", logger.Err(err))
			}
		}()
		log.Info(ctx, "serving metrics", logger.String("addr", cfg.Metrics.Addr))
	}

	if cfg.Audio.Enabled {
		thud, err := sound.NewThud(cfg.Audio.Frequency)
		if err != nil {
			log.Warn(ctx, "audio disabled", logger.Err(err))
		} else {
			defer thud.Close()
			observers = append(observers, thud)
		}
	}

	var opts []jump.Option
	if len(observers) > 0 {
		opts = append(opts, jump.WithObserver(observers))
	}

	app, err := tui.New(ctx, cfg, tui.Repos{
		Jumpers:  repository.NewJumperRepo(db),
		Landings: repository.NewLandingRepo(db),
	}, jumpers, log.Named("tui"), opts...)
	if err != nil {
		return err
	}

	log.Info(ctx, "starting", logger.Int("jumpers", len(jumpers)))
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
