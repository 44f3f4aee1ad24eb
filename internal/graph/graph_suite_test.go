package graph_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/blockforge/storagecore/internal/graph"
)

func TestGraphSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Graph Invariant Suite")
}

var _ = Describe("graph acyclicity", func() {
	// Property 1: for every sequence of legal mutations, depends_on(x, x)
	// is false. AddParent's cycle check is what upholds this; this
	// exercises it through a chain long enough that a naive "only check
	// direct parents" implementation would miss the cycle.
	It("rejects an edge that would close a multi-hop cycle", func() {
		g := graph.New()
		a := graph.NewDevice(0, "a", graph.KindDM)
		b := graph.NewDevice(0, "b", graph.KindDM)
		c := graph.NewDevice(0, "c", graph.KindDM)
		Expect(g.Add(a)).To(Succeed())
		Expect(g.Add(b)).To(Succeed())
		Expect(g.Add(c)).To(Succeed())

		Expect(g.AddParent(b, a)).To(Succeed())
		Expect(g.AddParent(c, b)).To(Succeed())

		err := g.AddParent(a, c)
		Expect(err).To(MatchError(graph.ErrCycle))
		Expect(g.DependsOn(a, a)).To(BeFalse())
	})

	It("never lets a device depend on itself after any legal mutation", func() {
		g := graph.New()
		disk := graph.NewDevice(0, "sda", graph.KindDisk)
		part := graph.NewDevice(0, "sda1", graph.KindPartition)
		Expect(g.Add(disk)).To(Succeed())
		Expect(g.Add(part)).To(Succeed())
		Expect(g.AddParent(part, disk)).To(Succeed())
		Expect(g.RemoveParent(part, disk)).To(Succeed())
		Expect(g.AddParent(part, disk)).To(Succeed())

		Expect(g.DependsOn(disk, disk)).To(BeFalse())
		Expect(g.DependsOn(part, part)).To(BeFalse())
	})
})
