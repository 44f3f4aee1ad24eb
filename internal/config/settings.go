package config

import (
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/blockforge/storagecore/internal/units"
)

func mustParseQuantity(s string) resource.Quantity {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

// AllocationSettings mirrors allocation_settings.go's per-class size
// floors, generalized from the CSI filesystem/block split to the
// per-format-kind minimums storagecore's planner enforces before
// scheduling a CreateDevice/CreateFormat pair.
type AllocationSettings struct {
	MinimumSize Quantity            `json:"minimumSize" yaml:"minimumSize"`
	ByFormat    map[string]Quantity `json:"byFormat" yaml:"byFormat"`
}

// MinimumFor returns the configured floor for a format kind, falling
// back to MinimumSize when the kind has no dedicated entry.
func (a AllocationSettings) MinimumFor(formatKind string) units.Size {
	if q, ok := a.ByFormat[formatKind]; ok {
		return q.Size()
	}
	return a.MinimumSize.Size()
}

// PlannerSettings carries the reservation knobs internal/container/lvm
// and internal/container/md need but which are policy, not formula:
// the thin-pool reserve band and the metadata-version-independent
// floor blivet hardcodes as DEFAULT_THPOOL_RESERVE in devices/lvm.py.
type PlannerSettings struct {
	ThinPoolReservePercent float64  `json:"thinPoolReservePercent" yaml:"thinPoolReservePercent"`
	ThinPoolReserveMin     Quantity `json:"thinPoolReserveMin" yaml:"thinPoolReserveMin"`
	ThinPoolReserveMax     Quantity `json:"thinPoolReserveMax" yaml:"thinPoolReserveMax"`
	MDSuperblockFloor      Quantity `json:"mdSuperblockFloor" yaml:"mdSuperblockFloor"`
}

// Settings is the root configuration document storagecorectl loads,
// mirroring the flat `config struct` the teacher's root.go binds pflags
// into, split into sub-structs instead of one flat namespace since
// storagecore has no CSI server settings to keep it company.
type Settings struct {
	Allocation AllocationSettings `json:"allocation" yaml:"allocation"`
	Planner    PlannerSettings    `json:"planner" yaml:"planner"`
	RunnerNamespace string         `json:"runnerNamespace" yaml:"runnerNamespace"`
}

// Default returns the zero-configuration Settings storagecorectl falls
// back to when no config file is found, matching blivet's own
// DEFAULT_THPOOL_RESERVE (20%, 1GiB floor, 100GiB ceiling).
func Default() Settings {
	return Settings{
		Planner: PlannerSettings{
			ThinPoolReservePercent: 20,
			ThinPoolReserveMin:     Quantity(mustParseQuantity("1Gi")),
			ThinPoolReserveMax:     Quantity(mustParseQuantity("100Gi")),
			MDSuperblockFloor:      Quantity(mustParseQuantity("2Mi")),
		},
	}
}
