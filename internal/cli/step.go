package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/routine"
	"github.com/thruflo/kaprekar/internal/tui"
)

var stepAll bool

var stepCmd = &cobra.Command{
	Use:   "step <number>",
	Short: "Show one step of Kaprekar's routine",
	Long: `Shows the descending and ascending rearrangements of a number's digits
and their difference. With --all, follows the routine to 6174 (or the
configured bound) without pausing.`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

func init() {
	stepCmd.Flags().BoolVarP(&stepAll, "all", "a", false, "show every step up to the bound")
	rootCmd.AddCommand(stepCmd)
}

func runStep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n, err := routine.ParseInput(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := tui.NewTerminal(out).Palette(cfg.Display.Color)

	limit := 2
	if stepAll {
		limit = cfg.Limits.MaxTrajectory
	}
	seq := kaprekar.Sequence(n, limit)

	for i, value := range seq {
		if i > 0 {
			for _, line := range tui.RenderStep(kaprekar.Transform(seq[i-1]), palette) {
				fmt.Fprintln(out, line)
			}
		}
		fmt.Fprintln(out, tui.RenderEntry(i+1, value, palette))
	}
	return nil
}
