package plan_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/plan"
	"github.com/blockforge/storagecore/internal/runner"
)

func TestPlanSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plan Scenario Suite")
}

var _ = Describe("resizing a partition", func() {
	// S7: shrinking a partition must shrink its filesystem before the
	// partition itself, never the reverse - truncating the partition
	// table entry first would leave the filesystem believing it still
	// owns blocks that are no longer part of the partition.
	It("schedules the format shrink before the device shrink regardless of call order", func() {
		g := graph.New()
		disk := graph.NewDevice(1, "sda", graph.KindDisk)
		disk.Exists, disk.Active = true, true
		Expect(g.Add(disk)).To(Succeed())

		part := graph.NewDevice(2, "sda1", graph.KindPartition)
		part.Exists, part.Active = true, true
		part.Format = format.New(format.KindExt4)
		part.Format.Exists = true
		Expect(g.Add(part)).To(Succeed())
		Expect(g.AddParent(part, disk)).To(Succeed())

		p := plan.New(g, runner.NewFakeRunner())
		deviceShrink := p.Schedule(plan.NewResizeDeviceShrink(part, func(*graph.Graph) runner.Descriptor {
			return runner.Descriptor{Argv: []string{"parted", "resizepart"}}
		}, nil))
		formatShrink := p.Schedule(plan.NewResizeFormatShrink(part, func(*graph.Graph) runner.Descriptor {
			return runner.Descriptor{Argv: []string{"resize2fs", part.Name}}
		}, nil))

		ordered := p.Ordered()
		Expect(ordered).To(HaveLen(2))
		Expect(ordered[0]).To(BeIdenticalTo(formatShrink))
		Expect(ordered[1]).To(BeIdenticalTo(deviceShrink))
	})
})
