package instrview

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/cow"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// SpectrumIndex addresses one spectrum in a SpectrumInfo.
type SpectrumIndex int

// SpectrumInfo maps Spectrum -> []DetectorIndex and exposes
// spectrum-level derived quantities, chiefly aggregated L2. Duplicate
// detector indexes within one spectrum are permitted and are not
// deduplicated, matching the source behavior.
type SpectrumInfo struct {
	detectors *DetectorInfo
	spectra   cow.Array[[]flattree.DetectorIndex]
}

// NewDefaultSpectrumInfo builds the 1:1 default mapping: one
// Spectrum{i} per detector, reusing DetectorInfo's L2 computation by
// reference (every SpectrumInfo.L2 call for this mapping simply
// delegates to the single underlying DetectorInfo.L2 call, so it shares
// the same lazily-computed, cached value).
func NewDefaultSpectrumInfo(detectors *DetectorInfo) *SpectrumInfo {
	n := detectors.NDetectors()
	spectra := make([][]flattree.DetectorIndex, n)
	for i := range spectra {
		spectra[i] = []flattree.DetectorIndex{flattree.DetectorIndex(i)}
	}
	return &SpectrumInfo{detectors: detectors, spectra: cow.New(spectra)}
}

// NewSpectrumInfo builds a general spectrum mapping from an explicit list
// of detector-index groups.
func NewSpectrumInfo(detectors *DetectorInfo, spectra [][]flattree.DetectorIndex) *SpectrumInfo {
	return &SpectrumInfo{detectors: detectors, spectra: cow.New(append([][]flattree.DetectorIndex(nil), spectra...))}
}

// NSpectra returns the number of spectra.
func (s *SpectrumInfo) NSpectra() int { return s.spectra.Len() }

func (s *SpectrumInfo) checkSpectrum(i SpectrumIndex) error {
	if int(i) < 0 || int(i) >= s.NSpectra() {
		return &instrerr.OutOfRangeError{Kind: instrerr.KindSpectrum, Index: int(i), Size: s.NSpectra()}
	}
	return nil
}

// Detectors returns the detector indices mapped to spectrumIndex.
func (s *SpectrumInfo) Detectors(i SpectrumIndex) ([]flattree.DetectorIndex, error) {
	if err := s.checkSpectrum(i); err != nil {
		return nil, err
	}
	return s.spectra.Get(int(i)), nil
}

// L2 returns spectrumIndex's aggregated L2: the exact floating-point mean
// (sum / count) of its mapped detectors' L2 values.
func (s *SpectrumInfo) L2(i SpectrumIndex) (float64, error) {
	dets, err := s.Detectors(i)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, d := range dets {
		v, err := s.detectors.L2(d)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(dets)), nil
}

// Modify forwards Move/Rotate to the wrapped DetectorInfo unchanged.
// DetectorPurgeCommand is special-cased: beyond the DetectorInfo-level
// reprojection, every spectrum's detector-index membership list is
// renumbered against the purge's DetectorIndexMap, and any detector index
// named by a now-removed detector is dropped from its spectrum. A
// spectrum left with no detectors still exists, with L2 undefined (NaN).
func (s *SpectrumInfo) Modify(nodeIndex flattree.ComponentIndex, cmd component.Command) (bool, error) {
	purge, ok := cmd.(component.DetectorPurgeCommand)
	if !ok {
		return s.detectors.Modify(nodeIndex, cmd)
	}

	changed, result, err := s.detectors.PurgeDetectors(purge.DetectorIds)
	if err != nil || !changed {
		return changed, err
	}

	old := s.spectra.Snapshot()
	newSpectra := make([][]flattree.DetectorIndex, len(old))
	for i, dets := range old {
		filtered := make([]flattree.DetectorIndex, 0, len(dets))
		for _, d := range dets {
			if int(d) >= len(result.DetectorIndexMap) {
				continue
			}
			if nd := result.DetectorIndexMap[d]; nd != flattree.NoDetector {
				filtered = append(filtered, nd)
			}
		}
		newSpectra[i] = filtered
	}
	s.spectra = cow.New(newSpectra)

	return true, nil
}
