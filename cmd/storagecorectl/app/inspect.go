package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/pkg/storagecore"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [topology file]",
	Short: "Build a Tree from a declarative topology and print every device's current state",
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
		return printGraph(cmd, tree)
	},
}

func printGraph(cmd *cobra.Command, tree *storagecore.Tree) error {
	devices := tree.Graph.All()
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	for _, d := range devices {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-14s size=%-12d exists=%-5t active=%-5t\n",
			d.Name, d.Kind, d.Size.Bytes(), d.Exists, d.Active)
	}
	return nil
}
