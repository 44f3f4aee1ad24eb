package app

import (
	"fmt"
	"os"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/raid"
	"github.com/blockforge/storagecore/internal/units"
	"github.com/blockforge/storagecore/pkg/storagecore"
)

// defaultMDChunk is applied when a topology file's md array entry
// omits chunk, matching mdadm's own 512KiB default for every level
// that uses chunked striping.
const defaultMDChunk = "512KiB"

// topologyFile is the declarative shape `plan`/`apply` read, a minimal
// stand-in for a full blivet-style kickstart description: disks are
// assumed pre-existing (named, sized), and mdArrays describe the one
// aggregate kind worth exercising end-to-end from a file without a much
// larger schema compiler.
type topologyFile struct {
	Disks    []diskSpec    `json:"disks" yaml:"disks"`
	MDArrays []mdArraySpec `json:"mdArrays" yaml:"mdArrays"`
}

type diskSpec struct {
	Name string `json:"name" yaml:"name"`
	Size string `json:"size" yaml:"size"`
}

type mdArraySpec struct {
	Name    string   `json:"name" yaml:"name"`
	Level   string   `json:"level" yaml:"level"`
	Members []string `json:"members" yaml:"members"`
	// Chunk is optional; omitting it falls back to defaultMDChunk
	// rather than forcing every topology file to spell out mdadm's own
	// default.
	Chunk           *string `json:"chunk" yaml:"chunk"`
	MetadataVersion string  `json:"metadataVersion" yaml:"metadataVersion"`
}

func loadTopology(path string) (topologyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return topologyFile{}, err
	}
	var t topologyFile
	if err := yaml.Unmarshal(data, &t); err != nil {
		return topologyFile{}, fmt.Errorf("parsing topology file %s: %w", path, err)
	}
	return t, nil
}

// buildTree materializes a topologyFile into a Tree: disks first (they
// already exist), then md arrays over them, scheduling every action
// along the way without executing any of it.
func buildTree(t topologyFile, tree *storagecore.Tree) error {
	disks := map[string]*graph.Device{}
	for _, d := range t.Disks {
		size, err := units.ParseString(d.Size)
		if err != nil {
			return fmt.Errorf("disk %s: %w", d.Name, err)
		}
		device, err := tree.CreateDisk(d.Name, size)
		if err != nil {
			return fmt.Errorf("disk %s: %w", d.Name, err)
		}
		disks[d.Name] = device
	}

	for _, a := range t.MDArrays {
		level, err := raid.Lookup(a.Level)
		if err != nil {
			return fmt.Errorf("md array %s: %w", a.Name, err)
		}
		chunk, err := units.ParseString(ptr.Deref(a.Chunk, defaultMDChunk))
		if err != nil {
			return fmt.Errorf("md array %s: %w", a.Name, err)
		}
		members := make([]*graph.Device, 0, len(a.Members))
		for _, name := range a.Members {
			d, ok := disks[name]
			if !ok {
				return fmt.Errorf("md array %s: unknown member %s", a.Name, name)
			}
			members = append(members, d)
		}
		if _, _, err := tree.CreateMDArray(a.Name, level, members, chunk, a.MetadataVersion); err != nil {
			return fmt.Errorf("md array %s: %w", a.Name, err)
		}
	}
	return nil
}
