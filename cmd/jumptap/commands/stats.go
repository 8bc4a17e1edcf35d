package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/jumptap/internal/database/repository"
	"github.com/jask/jumptap/internal/service"
)

const maxNameDistance = 2

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func statsCmd() *cobra.Command {
	var (
		name  string
		limit int
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print click totals and recent landings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			jumpers := repository.NewJumperRepo(db)
			landings := repository.NewLandingRepo(db)
			out := cmd.OutOrStdout()

			if reset {
				svc := &service.MaintenanceService{DB: db}
				if err := svc.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "counts and landing history reset")
				return nil
			}

			if name != "" {
				j, err := jumpers.Resolve(ctx, name, maxNameDistance)
				if err != nil {
					return err
				}
				recent, err := landings.Recent(ctx, j.ID, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %d clicks\n", j.Label, j.Clicks)
				t := newTable("landed", "airtime")
				for _, l := range recent {
					t.Row(l.LandedAt.Local().Format(time.DateTime), formatAirtime(l.Airtime))
				}
				fmt.Fprintln(out, t.Render())
				return nil
			}

			list, err := jumpers.List(ctx)
			if err != nil {
				return err
			}
			t := newTable("#", "jumper", "clicks", "avg airtime")
			for _, j := range list {
				avg, err := landings.AverageAirtime(ctx, j.ID)
				if err != nil {
					return err
				}
				t.Row(strconv.Itoa(j.Position+1), j.Label, strconv.FormatInt(j.Clicks, 10), formatAirtime(avg))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "jumper", "j", "", "show recent landings for one jumper (fuzzy match)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of landings to show")
	cmd.Flags().BoolVar(&reset, "reset", false, "zero every click total and drop the landing history")
	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatAirtime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
