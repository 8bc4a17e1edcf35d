package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/jumptap/internal/jump"
	"github.com/jask/jumptap/internal/sim"
)

func simulateCmd() *cobra.Command {
	var (
		scriptFile string
		every      int
		frame      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "simulate [script]",
		Short: "Play a gesture script and print the frame trace",
		Example: `  jumptap simulate "press; wait 200ms; release; settle"
  jumptap simulate --file tap.txt --every 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var script string
			switch {
			case scriptFile != "":
				b, err := os.ReadFile(scriptFile)
				if err != nil {
					return err
				}
				script = string(b)
			case len(args) == 1:
				script = args[0]
			default:
				return fmt.Errorf("a script argument or --file is required")
			}

			steps, err := sim.Parse(script)
			if err != nil {
				return err
			}
			springs, err := cfg.Springs()
			if err != nil {
				return err
			}
			c, err := jump.New(
				jump.WithContext(cmd.Context()),
				jump.WithSprings(springs),
				jump.WithFPS(cfg.Animation.FPS),
				jump.WithLogger(log.Named("simulate")),
			)
			if err != nil {
				return err
			}
			if frame <= 0 {
				frame = time.Second / time.Duration(cfg.Animation.FPS)
			}

			trace, err := sim.Run(c, steps, frame)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := trace.Write(out, every); err != nil {
				return err
			}

			if len(trace.Landings) == 0 {
				return nil
			}
			landings := make([]string, 0, len(trace.Landings))
			for _, at := range trace.Landings {
				landings = append(landings, at.Round(time.Millisecond).String())
			}
			_, err = fmt.Fprintf(out, "landed at: %s\n", strings.Join(landings, " "))
			return err
		},
	}
	cmd.Flags().StringVarP(&scriptFile, "file", "f", "", "read the script from a file")
	cmd.Flags().IntVar(&every, "every", 1, "print every nth frame")
	cmd.Flags().DurationVar(&frame, "frame", 0, "frame delta (default 1/animation.fps)")
	return cmd
}
