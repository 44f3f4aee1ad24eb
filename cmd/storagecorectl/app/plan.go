package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/plan"
	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/pkg/storagecore"
)

var planCmd = &cobra.Command{
	Use:   "plan [topology file]",
	Short: "Build a Tree from a declarative topology and print the scheduled action order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := loadTopology(args[0])
		if err != nil {
			return err
		}
		tree := storagecore.New(runner.NewFakeRunner())
		if err := buildTree(topo, tree); err != nil {
			return err
		}
		for i, a := range tree.Ordered() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. [class %d] %s on %s\n",
				i+1, plan.SchedulingClass(a.Kind()), a.Kind(), deviceName(a.Device()))
		}
		return nil
	},
}

func deviceName(d *graph.Device) string {
	if d == nil {
		return "-"
	}
	return d.Name
}
