// Package app wires storagecorectl's cobra command tree, following the
// same Execute()/init()-free root.go shape as
// cmd/topolvm-controller/app/root.go: one rootCmd, flags bound once in
// Execute, a PreRunE that loads the config file into the flag set
// before any subcommand runs.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockforge/storagecore/internal/config"
	"github.com/blockforge/storagecore/internal/logging"
)

var settings struct {
	configFile string
	namespace  string
	zapOpts    logging.Options
	resolved   config.Settings
}

var rootCmd = &cobra.Command{
	Use:   "storagecorectl",
	Short: "Inspect, plan, and apply block-storage topologies",
	Long: `storagecorectl drives the storagecore device graph and action
planner from the command line: probe discovers existing devices, plan
schedules a declarative topology's actions without running them, and
apply executes the scheduled plan through the host's storage tools.`,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		resolved, err := config.Load(settings.configFile, cmd.Flags())
		if err != nil {
			return err
		}
		settings.resolved = resolved
		return nil
	},
}

// Execute adds every subcommand and runs the root command. Called once
// from main().
func Execute() {
	fs := rootCmd.PersistentFlags()
	fs.StringVar(&settings.configFile, config.FileFlagName, "storagecorectl.yaml",
		"configuration file (yaml/json/toml); searched in . and /etc/storagecore")
	fs.StringVar(&settings.namespace, "namespace", "",
		"mount namespace to nsenter into before invoking storage tools; empty runs directly on the host")
	logging.BindFlags(&settings.zapOpts, fs)

	rootCmd.AddCommand(probeCmd, planCmd, applyCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
