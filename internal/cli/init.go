package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thruflo/kaprekar/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .kaprekar/config.yaml",
	Long: `Creates .kaprekar/config.yaml in the current directory with the default
pacing, trajectory bound, display and log settings.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	if _, err := os.Stat(config.Path(cwd)); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", config.Path(cwd))
	}

	cfg := config.DefaultConfig()
	path, err := config.SaveConfig(cwd, &cfg, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
