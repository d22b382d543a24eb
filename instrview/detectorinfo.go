package instrview

import (
	"sync"
	"sync/atomic"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/cow"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// DetectorInfo projects a ComponentInfo onto the detector components. It
// owns mask/monitor flag overlays and lazily computes and caches each
// detector's L2 distance (and the instrument's single L1).
//
// The (compute, write cache, set flag) triple in L2 is a single atomic
// unit per slot: a sync.Mutex guards the compute-and-publish critical
// section, and an atomic.Bool flag gives the fast, lock-free path once a
// slot is published. Concurrent readers either observe the unresolved
// state or the fully-written cache entry, never a half-written one.
type DetectorInfo struct {
	ci *ComponentInfo

	isMasked  cow.Array[bool]
	isMonitor cow.Array[bool]

	sourcePos geom.V3
	samplePos geom.V3
	l1        float64

	l2Cache []float64
	l2Valid []atomic.Bool
	l2Mu    []sync.Mutex
}

// NewDetectorInfo builds the detector projection of ci. L1 is computed
// immediately from the tree's source and sample positions; L2 values are
// computed lazily on first read.
func NewDetectorInfo(ci *ComponentInfo) (*DetectorInfo, error) {
	tree := ci.Tree()

	sourcePos, err := ci.Position(tree.SourceComponentIndex())
	if err != nil {
		return nil, err
	}
	samplePos, err := ci.Position(tree.SampleComponentIndex())
	if err != nil {
		return nil, err
	}

	n := tree.NDetectors()
	return &DetectorInfo{
		ci:        ci,
		isMasked:  cow.New(make([]bool, n)),
		isMonitor: cow.New(make([]bool, n)),
		sourcePos: sourcePos,
		samplePos: samplePos,
		l1:        geom.Distance(sourcePos, samplePos),
		l2Cache:   make([]float64, n),
		l2Valid:   make([]atomic.Bool, n),
		l2Mu:      make([]sync.Mutex, n),
	}, nil
}

// ComponentInfo returns the underlying ComponentInfo this view projects.
func (d *DetectorInfo) ComponentInfo() *ComponentInfo { return d.ci }

// NDetectors returns the number of detectors.
func (d *DetectorInfo) NDetectors() int { return len(d.l2Cache) }

func (d *DetectorInfo) checkDetector(i flattree.DetectorIndex) error {
	if int(i) < 0 || int(i) >= d.NDetectors() {
		return &instrerr.OutOfRangeError{Kind: instrerr.KindDetector, Index: int(i), Size: d.NDetectors()}
	}
	return nil
}

// Position returns detectorIndex's position, projected through the
// underlying ComponentInfo.
func (d *DetectorInfo) Position(i flattree.DetectorIndex) (geom.V3, error) {
	if err := d.checkDetector(i); err != nil {
		return geom.V3{}, err
	}
	idx := d.ci.Tree().DetectorComponentIndexes()[i]
	return d.ci.Position(idx)
}

// L1 returns the source-to-sample distance.
func (d *DetectorInfo) L1() float64 { return d.l1 }

// L2 returns the sample-to-detector distance for detectorIndex, computing
// and caching it on first access. Repeated calls with no intervening
// mutation return the cached value.
func (d *DetectorInfo) L2(i flattree.DetectorIndex) (float64, error) {
	if err := d.checkDetector(i); err != nil {
		return 0, err
	}

	if d.l2Valid[i].Load() {
		return d.l2Cache[i], nil
	}

	d.l2Mu[i].Lock()
	defer d.l2Mu[i].Unlock()

	if d.l2Valid[i].Load() {
		return d.l2Cache[i], nil
	}

	pos, err := d.Position(i)
	if err != nil {
		return 0, err
	}
	v := geom.Distance(pos, d.samplePos)
	d.l2Cache[i] = v
	d.l2Valid[i].Store(true)
	return v, nil
}

// IsMasked reports whether detectorIndex is masked.
func (d *DetectorInfo) IsMasked(i flattree.DetectorIndex) (bool, error) {
	if err := d.checkDetector(i); err != nil {
		return false, err
	}
	return d.isMasked.Get(int(i)), nil
}

// SetMasked sets detectorIndex's masked flag. Mask changes do not
// invalidate the L2 cache.
func (d *DetectorInfo) SetMasked(i flattree.DetectorIndex, masked bool) error {
	if err := d.checkDetector(i); err != nil {
		return err
	}
	d.isMasked.MakeUniqueAndSet(int(i), masked)
	return nil
}

// IsMonitor reports whether detectorIndex is a monitor.
func (d *DetectorInfo) IsMonitor(i flattree.DetectorIndex) (bool, error) {
	if err := d.checkDetector(i); err != nil {
		return false, err
	}
	return d.isMonitor.Get(int(i)), nil
}

// SetMonitor sets detectorIndex's monitor flag. Monitor changes do not
// invalidate the L2 cache.
func (d *DetectorInfo) SetMonitor(i flattree.DetectorIndex, monitor bool) error {
	if err := d.checkDetector(i); err != nil {
		return err
	}
	d.isMonitor.MakeUniqueAndSet(int(i), monitor)
	return nil
}

// invalidateL2 resets every cache slot to unresolved.
func (d *DetectorInfo) invalidateL2() {
	for i := range d.l2Valid {
		d.l2Valid[i].Store(false)
	}
}

// CloneWithInstrumentTree produces a new DetectorInfo sharing this one's
// mask/monitor flags (copy-on-write) but projecting newTree instead.
// newTree must have the same detector count, else
// instrerr.InstrumentShapeMismatchError is returned. L1 is recomputed
// from newTree and the L2 cache starts empty.
func (d *DetectorInfo) CloneWithInstrumentTree(newTree *flattree.FlatTree) (*DetectorInfo, error) {
	if newTree.NDetectors() != d.NDetectors() {
		return nil, &instrerr.InstrumentShapeMismatchError{Want: d.NDetectors(), Got: newTree.NDetectors()}
	}

	newCI := NewComponentInfo(newTree)
	sourcePos, err := newCI.Position(newTree.SourceComponentIndex())
	if err != nil {
		return nil, err
	}
	samplePos, err := newCI.Position(newTree.SampleComponentIndex())
	if err != nil {
		return nil, err
	}

	n := d.NDetectors()
	return &DetectorInfo{
		ci:        newCI,
		isMasked:  d.isMasked.Clone(),
		isMonitor: d.isMonitor.Clone(),
		sourcePos: sourcePos,
		samplePos: samplePos,
		l1:        geom.Distance(sourcePos, samplePos),
		l2Cache:   make([]float64, n),
		l2Valid:   make([]atomic.Bool, n),
		l2Mu:      make([]sync.Mutex, n),
	}, nil
}

// Modify applies cmd to the component at nodeIndex (Move and Rotate act
// on that component alone, not on its descendants) and, on a
// successful change, invalidates the L2 cache (the mutation may have
// moved a detector or the sample). DetectorPurgeCommand is routed to
// PurgeDetectors instead, since removing detectors shrinks and reindexes
// this view's per-detector overlays rather than merely invalidating them.
func (d *DetectorInfo) Modify(nodeIndex flattree.ComponentIndex, cmd component.Command) (bool, error) {
	if purge, ok := cmd.(component.DetectorPurgeCommand); ok {
		changed, _, err := d.PurgeDetectors(purge.DetectorIds)
		return changed, err
	}

	changed, err := d.ci.ApplyCommand(nodeIndex, cmd)
	if err != nil {
		return false, err
	}
	if changed {
		// A mutation may have moved the sample or source too; recompute L1
		// and the cached sample/source positions eagerly since they are
		// cheap scalars, then invalidate the (potentially numerous) L2 cache.
		sourcePos, err := d.ci.Position(d.ci.Tree().SourceComponentIndex())
		if err != nil {
			return false, err
		}
		samplePos, err := d.ci.Position(d.ci.Tree().SampleComponentIndex())
		if err != nil {
			return false, err
		}
		d.sourcePos = sourcePos
		d.samplePos = samplePos
		d.l1 = geom.Distance(sourcePos, samplePos)
		d.invalidateL2()
	}
	return changed, nil
}

// PurgeDetectors removes the named detectors from the underlying
// ComponentInfo, reprojects mask/monitor flags onto the surviving,
// renumbered detectors, and resets the L2 cache so every L2 is recomputed
// on its next read. Source/sample positions and L1 are
// recomputed from the rebuilt tree. The returned PurgeResult is undefined
// when changed is false (nothing matched any of ids).
func (d *DetectorInfo) PurgeDetectors(ids []component.DetectorId) (changed bool, result flattree.PurgeResult, err error) {
	changed, result, err = d.ci.PurgeDetectors(ids)
	if err != nil || !changed {
		return changed, result, err
	}

	n := len(result.DetectorRemap)
	newMasked := make([]bool, n)
	newMonitor := make([]bool, n)
	for newIdx, oldIdx := range result.DetectorRemap {
		newMasked[newIdx] = d.isMasked.Get(int(oldIdx))
		newMonitor[newIdx] = d.isMonitor.Get(int(oldIdx))
	}
	d.isMasked = cow.New(newMasked)
	d.isMonitor = cow.New(newMonitor)
	d.l2Cache = make([]float64, n)
	d.l2Valid = make([]atomic.Bool, n)
	d.l2Mu = make([]sync.Mutex, n)

	sourcePos, err := d.ci.Position(d.ci.Tree().SourceComponentIndex())
	if err != nil {
		return false, flattree.PurgeResult{}, err
	}
	samplePos, err := d.ci.Position(d.ci.Tree().SampleComponentIndex())
	if err != nil {
		return false, flattree.PurgeResult{}, err
	}
	d.sourcePos = sourcePos
	d.samplePos = samplePos
	d.l1 = geom.Distance(sourcePos, samplePos)

	return true, result, nil
}
