package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/kaprekar/internal/routine"
	"github.com/thruflo/kaprekar/internal/stream"
	"github.com/thruflo/kaprekar/internal/tui"
)

var (
	runInterval time.Duration
	runInstant  bool
	runJSON     bool
	runEvents   bool
	runQuiet    bool
	runBell     bool
)

// errInterrupted is returned when the run is torn down by a signal.
var errInterrupted = errors.New("interrupted")

var runCmd = &cobra.Command{
	Use:   "run <number>",
	Short: "Run Kaprekar's routine from a number, one step per interval",
	Long: `Runs Kaprekar's routine from a number of up to four digits, pausing
between steps and printing each subtraction as it happens.

The run stops when it reaches 6174 or after the configured number of values
(8 by default). Numbers whose digits are all equal collapse to 0 and stop at
the bound. Ctrl+C cancels the run.`,
	Example: `  kaprekar run 3524
  kaprekar run 1111 --instant
  kaprekar run 42 --interval 250ms --json
  kaprekar run 3524 --events | jq .type`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&runInterval, "interval", 0, "pause between steps (default: pacing.interval_ms from config)")
	runCmd.Flags().BoolVar(&runInstant, "instant", false, "do not pause between steps")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the final state as JSON instead of narrating")
	runCmd.Flags().BoolVar(&runEvents, "events", false, "print every state change and step as NDJSON instead of narrating")
	runCmd.MarkFlagsMutuallyExclusive("json", "events")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "skip the introduction")
	runCmd.Flags().BoolVar(&runBell, "bell", false, "ring the terminal bell when 6174 is reached")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	sim := routine.New(routine.Options{
		Pacer:         selectPacer(cmd, cfg.Pacing.Interval()),
		MaxTrajectory: cfg.Limits.MaxTrajectory,
		Logger:        logger,
	})

	out := cmd.OutOrStdout()
	var events *stream.Writer
	switch {
	case runEvents:
		events = stream.NewWriter(out)
		unsubscribe := sim.Subscribe(events.Observe)
		defer unsubscribe()
	case !runJSON:
		terminal := tui.NewTerminal(out)
		narrator := tui.NewNarrator(out, tui.NarratorOptions{
			Width:   min(terminal.Width(), tui.DefaultWidth),
			Palette: terminal.Palette(cfg.Display.Color),
			Bell:    runBell,
		})
		if !runQuiet && !cfg.Display.Quiet {
			narrator.WriteIntro()
		}
		unsubscribe := sim.Subscribe(narrator.Observe)
		defer unsubscribe()
	}

	startErr := sim.Start(ctx, args[0])
	if startErr == nil {
		if err := sim.Wait(ctx); err != nil {
			sim.Reset()
			return errInterrupted
		}
	}

	snap := sim.Snapshot()
	if ctx.Err() != nil && snap.State == routine.StateIdle {
		return errInterrupted
	}

	if events != nil {
		if err := events.Err(); err != nil {
			return err
		}
	}

	if runJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newRunResult(snap)); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	return startErr
}

// selectPacer picks the pacing for a run: --instant, then --interval, then
// config. A zero interval means no pause.
func selectPacer(cmd *cobra.Command, configured time.Duration) routine.Pacer {
	interval := configured
	if cmd.Flags().Changed("interval") {
		interval = runInterval
	}
	if runInstant || interval <= 0 {
		return routine.ImmediatePacer{}
	}
	return routine.NewTimerPacer(interval)
}

// runResult is the --json output.
type runResult struct {
	State      string `json:"state"`
	Trajectory []int  `json:"trajectory"`
	Steps      int    `json:"steps"`
	Reached    bool   `json:"reached"`
	Error      string `json:"error,omitempty"`
}

func newRunResult(snap routine.Snapshot) runResult {
	trajectory := snap.Trajectory
	if trajectory == nil {
		trajectory = []int{}
	}
	return runResult{
		State:      snap.State.String(),
		Trajectory: trajectory,
		Steps:      len(snap.Steps),
		Reached:    snap.State == routine.StateReached,
		Error:      snap.Error,
	}
}
