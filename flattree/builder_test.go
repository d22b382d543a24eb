package flattree_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
	"github.com/dmsc-instrument/cow-instrument/sample"
)

var _ = Describe("BuildFromRoot", func() {
	It("flattens a minimal source/sample/detector instrument", func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.ComponentSize()).To(Equal(4)) // root composite + 3 leaves
		Expect(tree.NDetectors()).To(Equal(1))
		Expect(tree.NPathComponents()).To(Equal(2))
	})

	It("preserves sibling insertion order in the root's children", func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		rootProxy := tree.RootProxy()
		Expect(rootProxy.Children).To(HaveLen(3))
		Expect(rootProxy.Children).To(Equal([]flattree.ComponentIndex{
			tree.SourceComponentIndex(),
			tree.SampleComponentIndex(),
			tree.DetectorComponentIndexes()[0],
		}))
	})

	It("fails when no source is present", func() {
		root := &component.Composite{}
		root.AddChild(&component.PointSample{})
		_, err := flattree.BuildFromRoot(root)

		var invalid *instrerr.InvalidInstrumentError
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(invalid))
		Expect(err.(*instrerr.InvalidInstrumentError).Reason).To(Equal(instrerr.ReasonNoSource))
	})

	It("fails when no sample is present", func() {
		root := &component.Composite{}
		root.AddChild(&component.PointSource{})
		_, err := flattree.BuildFromRoot(root)

		Expect(err).To(HaveOccurred())
		Expect(err.(*instrerr.InvalidInstrumentError).Reason).To(Equal(instrerr.ReasonNoSample))
	})

	It("derives entry and exit points offset by half the guide length", func() {
		root := &component.Composite{}
		root.AddChild(&component.PointSource{})
		root.AddChild(&component.PointSample{Position: geom.V3{Z: 10}})
		root.AddChild(&component.ParabolicGuide{Position: geom.V3{Z: 5}, Rot: geom.Identity, A: 1, H: 0})

		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		guidePath := flattree.PathIndex(2)
		Expect(tree.StartEntryPoints()[guidePath].Z).To(BeNumerically("~", 4, 1e-9))
		Expect(tree.StartExitPoints()[guidePath].Z).To(BeNumerically("~", 6, 1e-9))
	})
})

var _ = Describe("FlatTree.SubTreeIndexes", func() {
	It("returns the node itself first, then breadth-first descendants", func() {
		root := sample.FourSideDetectorArray(2, 0.1, 2, 10, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		subtree, err := tree.SubTreeIndexes(tree.RootIndex())
		Expect(err).NotTo(HaveOccurred())
		Expect(subtree[0]).To(Equal(tree.RootIndex()))
		Expect(len(subtree)).To(Equal(tree.ComponentSize()))
	})

	It("rejects an out-of-range index", func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		_, err = tree.SubTreeIndexes(flattree.ComponentIndex(tree.ComponentSize() + 1))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("FlatTree SOA round trip", func() {
	It("reconstructs an equal tree through ToSOA/FromSOA", func() {
		root := sample.FourSideDetectorArray(2, 0.1, 2, 10, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		soa := tree.ToSOA()
		rebuilt, err := flattree.FromSOA(soa)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuilt.Equal(tree)).To(BeTrue())
	})

	It("rejects mismatched array lengths", func() {
		_, err := flattree.FromSOA(flattree.SOA{
			Proxies:   []flattree.Proxy{{}},
			Positions: []geom.V3{},
		})
		Expect(err).To(HaveOccurred())
	})
})
