package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/kaprekar/internal/config"
	"github.com/thruflo/kaprekar/internal/routine"
	"github.com/thruflo/kaprekar/internal/stream"
)

// resetFlags restores package-level flag variables and runs the test from an
// empty working directory.
func resetFlags(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	configPath = ""
	verbose = false
	runInterval = 0
	runInstant = true
	runJSON = false
	runEvents = false
	runQuiet = true
	runBell = false
	stepAll = false
	initForce = false

	return dir
}

func execute(t *testing.T, cmd *cobra.Command, run func(*cobra.Command, []string) error, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})

	err := run(cmd, args)
	return stdout.String(), stderr.String(), err
}

func TestRunCommand_Narrates(t *testing.T) {
	resetFlags(t)

	out, _, err := execute(t, runCmd, runRun, "3524")
	require.NoError(t, err)

	assert.Contains(t, out, " 1 │ 3524")
	assert.Contains(t, out, "   │ - 0378  ascending")
	assert.Contains(t, out, " 4 │ 6174  Kaprekar's constant!")
	assert.Contains(t, out, "reached 6174 after 3 steps")
	assert.NotContains(t, out, "\033[", "no color without a terminal")
}

func TestRunCommand_Intro(t *testing.T) {
	resetFlags(t)
	runQuiet = false

	out, _, err := execute(t, runCmd, runRun, "6174")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Kaprekar's constant (6174)"))
}

func TestRunCommand_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    runResult
		wantErr bool
	}{
		{
			name:  "reached",
			input: "3524",
			want:  runResult{State: "reached", Trajectory: []int{3524, 3087, 8352, 6174}, Steps: 3, Reached: true},
		},
		{
			name:  "repdigit stalls",
			input: "1111",
			want:  runResult{State: "stalled", Trajectory: []int{1111, 0, 0, 0, 0, 0, 0, 0}, Steps: 7},
		},
		{
			name:    "invalid",
			input:   "99999",
			want:    runResult{State: "invalid", Trajectory: []int{}, Error: `invalid input "99999": must be at most 4 digits`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			runJSON = true

			out, _, err := execute(t, runCmd, runRun, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, routine.IsInputError(err))
			} else {
				require.NoError(t, err)
			}

			var got runResult
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunCommand_Events(t *testing.T) {
	resetFlags(t)
	runEvents = true

	out, _, err := execute(t, runCmd, runRun, "21")
	require.NoError(t, err)

	events, err := stream.ReadAll(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, events, 7) // start + 3 x (step, state)

	last, err := events[len(events)-1].StateData()
	require.NoError(t, err)
	assert.Equal(t, "reached", last.State)
	assert.Equal(t, []int{21, 2088, 8532, 6174}, last.Trajectory)
}

func TestRunCommand_UsesConfig(t *testing.T) {
	dir := resetFlags(t)
	runJSON = true

	cfg := config.DefaultConfig()
	cfg.Limits.MaxTrajectory = 3
	_, err := config.SaveConfig(dir, &cfg, false)
	require.NoError(t, err)

	out, _, err := execute(t, runCmd, runRun, "3524")
	require.NoError(t, err)

	var got runResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "stalled", got.State)
	assert.Equal(t, []int{3524, 3087, 8352}, got.Trajectory)
}

func TestRunCommand_ExplicitConfigMissing(t *testing.T) {
	dir := resetFlags(t)
	configPath = filepath.Join(dir, "missing.yaml")

	_, _, err := execute(t, runCmd, runRun, "3524")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestRunCommand_VerboseLogsTicks(t *testing.T) {
	resetFlags(t)
	verbose = true

	_, stderr, err := execute(t, runCmd, runRun, "3524")
	require.NoError(t, err)

	assert.Contains(t, stderr, "DEBUG: tick")
	assert.Contains(t, stderr, "component=routine")
	assert.Contains(t, stderr, "INFO: run finished")
}

func TestRunCommand_Paced(t *testing.T) {
	resetFlags(t)
	runInstant = false
	runInterval = 5 * time.Millisecond
	require.NoError(t, runCmd.Flags().Set("interval", "5ms"))
	t.Cleanup(func() { runCmd.Flags().Lookup("interval").Changed = false })

	start := time.Now()
	_, _, err := execute(t, runCmd, runRun, "3524")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestSelectPacer(t *testing.T) {
	resetFlags(t)
	runInstant = false

	assert.IsType(t, routine.ImmediatePacer{}, selectPacer(runCmd, 0))
	assert.Equal(t, routine.NewTimerPacer(time.Second), selectPacer(runCmd, time.Second))

	runInstant = true
	assert.IsType(t, routine.ImmediatePacer{}, selectPacer(runCmd, time.Second))
}

func TestStepCommand(t *testing.T) {
	resetFlags(t)

	out, _, err := execute(t, stepCmd, runStep, "3087")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		" 1 │ 3087",
		"   │   8730  descending",
		"   │ - 0378  ascending",
		"   │ = 8352",
		" 2 │ 8352",
		"",
	}, "\n"), out)
}

func TestStepCommand_All(t *testing.T) {
	resetFlags(t)
	stepAll = true

	out, _, err := execute(t, stepCmd, runStep, "6")
	require.NoError(t, err)

	assert.Contains(t, out, " 7 │ 6174  Kaprekar's constant!")
	assert.NotContains(t, out, " 8 │")
}

func TestStepCommand_InvalidInput(t *testing.T) {
	resetFlags(t)

	_, _, err := execute(t, stepCmd, runStep, "12a4")
	require.Error(t, err)
	assert.True(t, routine.IsInputError(err))
}

func TestInitCommand(t *testing.T) {
	dir := resetFlags(t)

	out, _, err := execute(t, initCmd, runInit)
	require.NoError(t, err)
	assert.Contains(t, out, config.Path(dir))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)

	_, _, err = execute(t, initCmd, runInit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	initForce = true
	_, _, err = execute(t, initCmd, runInit)
	assert.NoError(t, err)
}

func TestInitCommand_ConfigDirCreated(t *testing.T) {
	dir := resetFlags(t)

	_, _, err := execute(t, initCmd, runInit)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, config.Dir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["step"])
	assert.True(t, names["init"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, runCmd.Flags().Lookup("interval"))
}
