package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/blockforge/storagecore/internal/prober"
	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/pkg/storagecore"
)

// fileProber replays a JSON/YAML array of prober.Descriptor records
// recorded ahead of time, standing in for a real udev/sysfs/`lvm
// reportformat=json` backend the way a recorded fixture stands in for
// a live discovery pass in tests.
type fileProber struct {
	records []prober.Descriptor
}

// Probe replays the recorded descriptors, backfilling any format
// record's mount point from the host's live mount table when the
// fixture itself didn't capture one - a recorded fixture describes
// device/format topology, not a point-in-time mount state, so this
// keeps `probe` usable as a live discovery front-end rather than only
// a pure fixture replay.
func (f fileProber) Probe() ([]prober.Descriptor, error) {
	table := prober.NewMountTable()
	for i := range f.records {
		rec := &f.records[i]
		if rec.Kind != prober.RecordFormat || rec.Path == "" {
			continue
		}
		if rec.Fields == nil {
			rec.Fields = map[string]string{}
		}
		if _, ok := rec.Fields["mountpoint"]; !ok {
			if mountPoint, err := table.Lookup(rec.Path); err == nil && mountPoint != "" {
				rec.Fields["mountpoint"] = mountPoint
			}
		}
		if _, ok := rec.Fields["sector_size"]; !ok {
			if sectorSize, err := prober.LogicalSectorSize(rec.Path); err == nil {
				rec.Fields["sector_size"] = fmt.Sprintf("%d", sectorSize)
			}
		}
	}
	return f.records, nil
}

func loadDescriptors(path string) ([]prober.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []prober.Descriptor
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing descriptor file %s: %w", path, err)
	}
	return records, nil
}

var probeCmd = &cobra.Command{
	Use:   "probe [descriptor file]",
	Short: "Ingest a recorded discovery descriptor file into a fresh Tree and print the resulting devices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadDescriptors(args[0])
		if err != nil {
			return err
		}
		tree := storagecore.New(runner.NewFakeRunner())
		if err := tree.Probe(fileProber{records: records}); err != nil {
			return err
		}
		return printGraph(cmd, tree)
	},
}
