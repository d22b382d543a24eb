package instrview_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrview"
	"github.com/dmsc-instrument/cow-instrument/sample"
)

var _ = Describe("PathComponentInfo", func() {
	var (
		tree *flattree.FlatTree
		ci   *instrview.ComponentInfo
		pi   *instrview.PathComponentInfo
	)

	BeforeEach(func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		var err error
		tree, err = flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())
		ci = instrview.NewComponentInfo(tree)
		pi = instrview.NewPathComponentInfo(ci)
	})

	It("seeds entry/exit/length from the tree's start arrays", func() {
		length, err := pi.Length(tree.SourcePathIndex())
		Expect(err).NotTo(HaveOccurred())
		Expect(length).To(Equal(0.0))

		entry, err := pi.EntryPoint(tree.SourcePathIndex())
		Expect(err).NotTo(HaveOccurred())
		Expect(entry).To(Equal(tree.StartEntryPoints()[tree.SourcePathIndex()]))

		exit, err := pi.ExitPoint(tree.SourcePathIndex())
		Expect(err).NotTo(HaveOccurred())
		Expect(exit).To(Equal(tree.StartExitPoints()[tree.SourcePathIndex()]))
	})

	It("translates entry, exit, and position together", func() {
		idx := tree.SamplePathIndex()
		before, _ := pi.EntryPoint(idx)
		beforeExit, _ := pi.ExitPoint(idx)

		Expect(pi.MovePathComponent(idx, geom.V3{X: 3})).To(Succeed())

		afterEntry, _ := pi.EntryPoint(idx)
		afterExit, _ := pi.ExitPoint(idx)
		afterPos, _ := pi.Position(idx)
		Expect(afterEntry).To(Equal(before.Add(geom.V3{X: 3})))
		Expect(afterExit).To(Equal(beforeExit.Add(geom.V3{X: 3})))
		Expect(afterPos).To(Equal(geom.V3{X: 3, Z: 10}))
	})

	It("leaves path length invariant under translation", func() {
		idx := tree.SamplePathIndex()
		before, _ := pi.Length(idx)
		Expect(pi.MovePathComponent(idx, geom.V3{X: 3})).To(Succeed())
		after, _ := pi.Length(idx)
		Expect(after).To(Equal(before))
	})

	It("rejects an out-of-range path index", func() {
		_, err := pi.Length(flattree.PathIndex(pi.NPathComponents() + 1))
		Expect(err).To(HaveOccurred())
	})

	It("applies a batch move to every listed path index", func() {
		idxs := []flattree.PathIndex{tree.SourcePathIndex(), tree.SamplePathIndex()}
		Expect(pi.MovePathComponents(idxs, geom.V3{Y: 1})).To(Succeed())

		for _, idx := range idxs {
			pos, _ := pi.Position(idx)
			Expect(pos.Y).To(Equal(1.0))
		}
	})
})
