package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockforge/storagecore/internal/logging"
	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/pkg/storagecore"
)

var applyCmd = &cobra.Command{
	Use:   "apply [topology file]",
	Short: "Build a Tree from a declarative topology and execute its scheduled actions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := loadTopology(args[0])
		if err != nil {
			return err
		}
		logger := logging.New(settings.zapOpts)
		ctx := logging.IntoContext(cmd.Context(), logger)

		tree := storagecore.New(&runner.ExecRunner{Namespace: settings.namespace})
		if err := buildTree(topo, tree); err != nil {
			return err
		}
		if err := tree.Apply(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "applied")
		return nil
	},
}
