package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/jumptap/internal/config"
)

func configCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config path, or write the effective config there",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if write {
				if err := config.Save(cfg); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the effective configuration to the config path")
	return cmd
}
