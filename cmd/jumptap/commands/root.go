package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/jumptap/internal/config"
	"github.com/jask/jumptap/internal/database"
	"github.com/jask/jumptap/internal/database/repository"
	"github.com/jask/jumptap/internal/logger"
)

var (
	configPath string
	cfg        config.Config
	log        logger.Logger = logger.Nop()
	logCloser  io.Closer
)

// Execute builds the command tree and runs it.
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "jumptap",
		Short:         "Springy emoji buttons for your terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("JUMPTAP_CONFIG", configPath); err != nil {
					return err
				}
			}
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log, logCloser, err = logger.OpenFile(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("log: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/jumptap/config.toml)")

	root.AddCommand(runCmd(), simulateCmd(), statsCmd(), configCmd())
	return root
}

// openStore migrates and opens the click store and makes sure every
// configured jumper has a row.
func openStore(ctx context.Context) (*sql.DB, []repository.Jumper, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	jumpers, err := database.SeedJumpers(ctx, db, cfg.UI.Jumpers)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("seed jumpers: %w", err)
	}
	return db, jumpers, nil
}
