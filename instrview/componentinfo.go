// Package instrview layers copy-on-write, index-addressed views over a
// shared flattree.FlatTree: ComponentInfo, PathComponentInfo,
// DetectorInfo, AssemblyInfo, and SpectrumInfo.
package instrview

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/cow"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// ComponentInfo shares one FlatTree and owns copy-on-write per-component
// positions and rotations, plus a time-index map and scan times
// supporting the scanning extension.
type ComponentInfo struct {
	tree *flattree.FlatTree

	positions cow.Array[geom.V3]
	rotations cow.Array[geom.Quat]

	// timeIndexMap[componentIndex] lists the TimeIndex slots (into
	// positions/rotations) that component maps to, one per scan
	// interval. len(timeIndexMap) == tree.ComponentSize().
	timeIndexMap [][]flattree.TimeIndex
	scanTimes    []ScanTime
}

// NewComponentInfo builds the non-scanning default view over tree: one
// time slot per component, initialized from the tree's start positions
// and rotations.
func NewComponentInfo(tree *flattree.FlatTree) *ComponentInfo {
	n := tree.ComponentSize()

	positions := append([]geom.V3(nil), tree.StartPositions()...)
	rotations := append([]geom.Quat(nil), tree.StartRotations()...)

	timeIndexMap := make([][]flattree.TimeIndex, n)
	for i := range timeIndexMap {
		timeIndexMap[i] = []flattree.TimeIndex{flattree.TimeIndex(i)}
	}

	return &ComponentInfo{
		tree:         tree,
		positions:    cow.New(positions),
		rotations:    cow.New(rotations),
		timeIndexMap: timeIndexMap,
		scanTimes:    []ScanTime{DefaultScanTime},
	}
}

// NewScanningComponentInfo builds a scanning view: positions/rotations
// are expanded arrays covering every (component, scan interval) pair,
// addressed through timeIndexMap. len(timeIndexMap) must equal
// tree.ComponentSize(), and for every component the number of mapped
// time slots must equal len(scanTimes).
func NewScanningComponentInfo(
	tree *flattree.FlatTree,
	positions []geom.V3,
	rotations []geom.Quat,
	timeIndexMap [][]flattree.TimeIndex,
	scanTimes []ScanTime,
) (*ComponentInfo, error) {
	if len(positions) != len(rotations) {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
	}
	if len(timeIndexMap) != tree.ComponentSize() {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
	}
	for _, slots := range timeIndexMap {
		if len(slots) != len(scanTimes) {
			return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
		}
	}

	return &ComponentInfo{
		tree:         tree,
		positions:    cow.New(append([]geom.V3(nil), positions...)),
		rotations:    cow.New(append([]geom.Quat(nil), rotations...)),
		timeIndexMap: timeIndexMap,
		scanTimes:    append([]ScanTime(nil), scanTimes...),
	}, nil
}

// Tree returns the shared FlatTree this view overlays.
func (c *ComponentInfo) Tree() *flattree.FlatTree { return c.tree }

// NComponents returns the component count of the underlying tree.
func (c *ComponentInfo) NComponents() int { return c.tree.ComponentSize() }

// ScanTimes returns the ordered scan intervals.
func (c *ComponentInfo) ScanTimes() []ScanTime { return c.scanTimes }

func (c *ComponentInfo) checkComponent(idx flattree.ComponentIndex) error {
	if int(idx) < 0 || int(idx) >= c.tree.ComponentSize() {
		return &instrerr.OutOfRangeError{Kind: instrerr.KindComponent, Index: int(idx), Size: c.tree.ComponentSize()}
	}
	return nil
}

// slots returns the mapped TimeIndex slots for componentIndex.
func (c *ComponentInfo) slots(idx flattree.ComponentIndex) ([]flattree.TimeIndex, error) {
	if err := c.checkComponent(idx); err != nil {
		return nil, err
	}
	return c.timeIndexMap[idx], nil
}

// Position returns componentIndex's position at its first (and, for a
// non-scanning view, only) mapped time slot.
func (c *ComponentInfo) Position(idx flattree.ComponentIndex) (geom.V3, error) {
	return c.PositionAt(idx, 0)
}

// Rotation returns componentIndex's rotation at its first mapped time
// slot.
func (c *ComponentInfo) Rotation(idx flattree.ComponentIndex) (geom.Quat, error) {
	return c.RotationAt(idx, 0)
}

// PositionAt is the scanning form: it resolves to
// timeIndexMap[componentIndex][timeIndex] into the expanded array.
func (c *ComponentInfo) PositionAt(idx flattree.ComponentIndex, t flattree.TimeIndex) (geom.V3, error) {
	slots, err := c.slots(idx)
	if err != nil {
		return geom.V3{}, err
	}
	if int(t) < 0 || int(t) >= len(slots) {
		return geom.V3{}, &instrerr.OutOfRangeError{Kind: instrerr.KindComponent, Index: int(t), Size: len(slots)}
	}
	return c.positions.Get(int(slots[t])), nil
}

// RotationAt is the scanning form of Rotation.
func (c *ComponentInfo) RotationAt(idx flattree.ComponentIndex, t flattree.TimeIndex) (geom.Quat, error) {
	slots, err := c.slots(idx)
	if err != nil {
		return geom.Quat{}, err
	}
	if int(t) < 0 || int(t) >= len(slots) {
		return geom.Quat{}, &instrerr.OutOfRangeError{Kind: instrerr.KindComponent, Index: int(t), Size: len(slots)}
	}
	return c.rotations.Get(int(slots[t])), nil
}

// Move adds offset to componentIndex's position at every mapped time
// slot.
func (c *ComponentInfo) Move(idx flattree.ComponentIndex, offset geom.V3) error {
	slots, err := c.slots(idx)
	if err != nil {
		return err
	}
	for _, s := range slots {
		c.positions.MakeUniqueAndUpdate(int(s), func(v geom.V3) geom.V3 { return v.Add(offset) })
	}
	return nil
}

// Rotate composes affine = T(center).R(axis,theta).T(-center) and
// applies it to componentIndex's position, and composes the rotation
// part onto its rotation, at every mapped time slot.
func (c *ComponentInfo) Rotate(idx flattree.ComponentIndex, axis geom.V3, theta float64, center geom.V3) error {
	slots, err := c.slots(idx)
	if err != nil {
		return err
	}

	affine := geom.NewAffineXform(axis, theta, center)
	for _, s := range slots {
		c.positions.MakeUniqueAndUpdate(int(s), func(v geom.V3) geom.V3 { return affine.ApplyToPoint(v) })
		c.rotations.MakeUniqueAndUpdate(int(s), func(q geom.Quat) geom.Quat { return affine.ApplyToRotation(q) })
	}
	return nil
}

// ApplyCommand dispatches a component.Command against componentIndex
// through Move/Rotate. DetectorPurgeCommand ignores idx — it names its
// targets by DetectorId, not by subtree — and is handled by PurgeDetectors,
// whose bool result also answers "did the tree change" for this entry
// point. Callers that need the richer PurgeResult (to reproject their own
// detector-indexed overlays, the way DetectorInfo and SpectrumInfo do)
// should call PurgeDetectors directly instead of going through here.
func (c *ComponentInfo) ApplyCommand(idx flattree.ComponentIndex, cmd component.Command) (changed bool, err error) {
	switch v := cmd.(type) {
	case component.MoveCommand:
		if v.Offset == (geom.V3{}) {
			return false, c.Move(idx, v.Offset)
		}
		return true, c.Move(idx, v.Offset)

	case component.RotateCommand:
		if v.Theta == 0 {
			return false, c.Rotate(idx, v.Axis, v.Theta, v.Center)
		}
		return true, c.Rotate(idx, v.Axis, v.Theta, v.Center)

	case component.DetectorPurgeCommand:
		changed, _, err := c.PurgeDetectors(v.DetectorIds)
		return changed, err

	default:
		return false, nil
	}
}

// PurgeDetectors removes the named detectors from the shared tree via
// flattree.Purge and, if anything was actually removed, swaps in the
// rebuilt tree and reprojects this view's timeIndexMap onto it in place.
// The positions and rotations arrays are left as they are: slots
// belonging to removed components are simply
// orphaned (no longer referenced by timeIndexMap) rather than compacted
// out of the backing cow.Array — cheaper, and harmless since nothing
// addresses them anymore.
//
// The returned PurgeResult is undefined when changed is false.
func (c *ComponentInfo) PurgeDetectors(ids []component.DetectorId) (changed bool, result flattree.PurgeResult, err error) {
	result, err = flattree.Purge(c.tree, ids)
	if err != nil {
		return false, flattree.PurgeResult{}, err
	}
	if result.Tree == c.tree {
		return false, result, nil
	}

	newTimeIndexMap := make([][]flattree.TimeIndex, result.Tree.ComponentSize())
	for oldIdx, newIdx := range result.ComponentRemap {
		if newIdx == flattree.NoComponent {
			continue
		}
		newTimeIndexMap[newIdx] = c.timeIndexMap[oldIdx]
	}

	c.tree = result.Tree
	c.timeIndexMap = newTimeIndexMap
	return true, result, nil
}

// Equal reports whether two ComponentInfo views overlay FlatTrees that
// are themselves Equal.
func (c *ComponentInfo) Equal(other *ComponentInfo) bool {
	return c.tree.Equal(other.tree)
}
