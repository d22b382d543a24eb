package flattree_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/sample"
)

var _ = Describe("FlatTree indices", func() {
	It("returns the immediate children of a node", func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		children, err := tree.NextLevelIndexes(tree.RootIndex())
		Expect(err).NotTo(HaveOccurred())
		Expect(children).To(HaveLen(3))
	})

	It("fills a detector id map keyed by first occurrence", func() {
		root := &component.Composite{}
		root.AddChild(&component.PointSource{})
		root.AddChild(&component.PointSample{})
		root.AddChild(&component.Detector{DetId: 7})
		root.AddChild(&component.Detector{DetId: 7})

		tree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())

		m := make(map[component.DetectorId]flattree.DetectorIndex)
		tree.FillDetectorMap(m)
		Expect(m).To(HaveLen(1))
		Expect(m[7]).To(Equal(flattree.DetectorIndex(0)))
	})
})

var _ = Describe("FlatTree.Equal", func() {
	It("ignores position and rotation differences", func() {
		root1 := sample.SingleDetectorInstrument(10, 2, 1)
		root2 := sample.SingleDetectorInstrument(20, 4, 1)

		tree1, err := flattree.BuildFromRoot(root1)
		Expect(err).NotTo(HaveOccurred())
		tree2, err := flattree.BuildFromRoot(root2)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree1.Equal(tree2)).To(BeTrue())
	})

	It("detects a topology difference", func() {
		root1 := sample.SingleDetectorInstrument(10, 2, 1)
		root2 := sample.FourSideDetectorArray(2, 0.1, 2, 10, 1)

		tree1, err := flattree.BuildFromRoot(root1)
		Expect(err).NotTo(HaveOccurred())
		tree2, err := flattree.BuildFromRoot(root2)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree1.Equal(tree2)).To(BeFalse())
	})
})
