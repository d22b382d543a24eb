package instrview_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/instrview"
	"github.com/dmsc-instrument/cow-instrument/sample"
)

var _ = Describe("SpectrumInfo", func() {
	var (
		tree *flattree.FlatTree
		di   *instrview.DetectorInfo
	)

	BeforeEach(func() {
		root := sample.SingleDetectorInstrument(10, 2, 1)
		var err error
		tree, err = flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())
		ci := instrview.NewComponentInfo(tree)
		di, err = instrview.NewDetectorInfo(ci)
		Expect(err).NotTo(HaveOccurred())
	})

	It("defaults to one spectrum per detector", func() {
		si := instrview.NewDefaultSpectrumInfo(di)
		Expect(si.NSpectra()).To(Equal(di.NDetectors()))

		dets, err := si.Detectors(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(dets).To(Equal([]flattree.DetectorIndex{0}))
	})

	It("reports the same L2 as the underlying detector in the default mapping", func() {
		si := instrview.NewDefaultSpectrumInfo(di)
		spectrumL2, err := si.L2(0)
		Expect(err).NotTo(HaveOccurred())
		detectorL2, err := di.L2(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(spectrumL2).To(Equal(detectorL2))
	})

	It("averages L2 across a spectrum repeating the same detector", func() {
		si := instrview.NewSpectrumInfo(di, [][]flattree.DetectorIndex{{0, 0}})
		l2, err := si.L2(0)
		Expect(err).NotTo(HaveOccurred())
		detectorL2, _ := di.L2(0)
		Expect(l2).To(Equal(detectorL2))
	})

	It("averages L2 across two genuinely distinct detectors", func() {
		root := sample.TwoDetectorInstrument(10, 30, 40, 1)
		twoTree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())
		twoCI := instrview.NewComponentInfo(twoTree)
		twoDI, err := instrview.NewDetectorInfo(twoCI)
		Expect(err).NotTo(HaveOccurred())

		l2a, err := twoDI.L2(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l2a).To(Equal(30.0))

		l2b, err := twoDI.L2(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(l2b).To(Equal(40.0))

		si := instrview.NewSpectrumInfo(twoDI, [][]flattree.DetectorIndex{{0, 1}})
		l2, err := si.L2(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l2).To(Equal(35.0))
	})

	It("rejects an out-of-range spectrum index", func() {
		si := instrview.NewDefaultSpectrumInfo(di)
		_, err := si.Detectors(instrview.SpectrumIndex(si.NSpectra() + 1))
		Expect(err).To(HaveOccurred())
	})

	It("renumbers a spectrum's detector membership after a purge removes one of its detectors", func() {
		root := sample.TwoDetectorInstrument(10, 30, 40, 1)
		twoTree, err := flattree.BuildFromRoot(root)
		Expect(err).NotTo(HaveOccurred())
		twoCI := instrview.NewComponentInfo(twoTree)
		twoDI, err := instrview.NewDetectorInfo(twoCI)
		Expect(err).NotTo(HaveOccurred())

		si := instrview.NewSpectrumInfo(twoDI, [][]flattree.DetectorIndex{{0, 1}})

		changed, err := si.Modify(0, component.DetectorPurgeCommand{DetectorIds: []component.DetectorId{1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).To(BeTrue())

		Expect(twoDI.NDetectors()).To(Equal(1))
		dets, err := si.Detectors(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(dets).To(Equal([]flattree.DetectorIndex{0}))

		l2, err := si.L2(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l2).To(Equal(40.0))
	})
})
