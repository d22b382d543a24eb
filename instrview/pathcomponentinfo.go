package instrview

import (
	"github.com/dmsc-instrument/cow-instrument/cow"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// PathComponentInfo projects a ComponentInfo onto the path components
// (source, sample, guides), additionally tracking per-path entry and
// exit points. pathLengths are invariant under rigid-body transforms and
// are never recomputed.
type PathComponentInfo struct {
	ci *ComponentInfo

	entryPoints cow.Array[geom.V3]
	exitPoints  cow.Array[geom.V3]
	pathLengths []float64
}

// NewPathComponentInfo builds the path-component projection of ci,
// seeded from its underlying FlatTree's start entry/exit/length arrays.
func NewPathComponentInfo(ci *ComponentInfo) *PathComponentInfo {
	tree := ci.Tree()
	return &PathComponentInfo{
		ci:          ci,
		entryPoints: cow.New(append([]geom.V3(nil), tree.StartEntryPoints()...)),
		exitPoints:  cow.New(append([]geom.V3(nil), tree.StartExitPoints()...)),
		pathLengths: append([]float64(nil), tree.PathLengths()...),
	}
}

// NPathComponents returns the number of path components.
func (p *PathComponentInfo) NPathComponents() int { return len(p.pathLengths) }

func (p *PathComponentInfo) checkPath(i flattree.PathIndex) error {
	if int(i) < 0 || int(i) >= p.NPathComponents() {
		return &instrerr.OutOfRangeError{Kind: instrerr.KindPathComponent, Index: int(i), Size: p.NPathComponents()}
	}
	return nil
}

func (p *PathComponentInfo) componentIndex(i flattree.PathIndex) (flattree.ComponentIndex, error) {
	if err := p.checkPath(i); err != nil {
		return 0, err
	}
	return p.ci.Tree().PathComponentIndexes()[i], nil
}

// Position returns the position of the path component at pathIndex,
// projected through the underlying ComponentInfo.
func (p *PathComponentInfo) Position(i flattree.PathIndex) (geom.V3, error) {
	idx, err := p.componentIndex(i)
	if err != nil {
		return geom.V3{}, err
	}
	return p.ci.Position(idx)
}

// Rotation returns the rotation of the path component at pathIndex.
func (p *PathComponentInfo) Rotation(i flattree.PathIndex) (geom.Quat, error) {
	idx, err := p.componentIndex(i)
	if err != nil {
		return geom.Quat{}, err
	}
	return p.ci.Rotation(idx)
}

// EntryPoint returns the entry point of the path component at pathIndex.
func (p *PathComponentInfo) EntryPoint(i flattree.PathIndex) (geom.V3, error) {
	if err := p.checkPath(i); err != nil {
		return geom.V3{}, err
	}
	return p.entryPoints.Get(int(i)), nil
}

// ExitPoint returns the exit point of the path component at pathIndex.
func (p *PathComponentInfo) ExitPoint(i flattree.PathIndex) (geom.V3, error) {
	if err := p.checkPath(i); err != nil {
		return geom.V3{}, err
	}
	return p.exitPoints.Get(int(i)), nil
}

// Length returns the invariant path length at pathIndex.
func (p *PathComponentInfo) Length(i flattree.PathIndex) (float64, error) {
	if err := p.checkPath(i); err != nil {
		return 0, err
	}
	return p.pathLengths[i], nil
}

// MovePathComponent adds offset to the path component's position, entry
// point, and exit point.
func (p *PathComponentInfo) MovePathComponent(i flattree.PathIndex, offset geom.V3) error {
	idx, err := p.componentIndex(i)
	if err != nil {
		return err
	}
	if err := p.ci.Move(idx, offset); err != nil {
		return err
	}
	p.entryPoints.MakeUniqueAndUpdate(int(i), func(v geom.V3) geom.V3 { return v.Add(offset) })
	p.exitPoints.MakeUniqueAndUpdate(int(i), func(v geom.V3) geom.V3 { return v.Add(offset) })
	return nil
}

// RotatePathComponent applies the affine rotation to the path
// component's position, entry point, and exit point, and composes the
// rotation onto its stored rotation.
func (p *PathComponentInfo) RotatePathComponent(i flattree.PathIndex, axis geom.V3, theta float64, center geom.V3) error {
	idx, err := p.componentIndex(i)
	if err != nil {
		return err
	}
	if err := p.ci.Rotate(idx, axis, theta, center); err != nil {
		return err
	}
	affine := geom.NewAffineXform(axis, theta, center)
	p.entryPoints.MakeUniqueAndUpdate(int(i), func(v geom.V3) geom.V3 { return affine.ApplyToPoint(v) })
	p.exitPoints.MakeUniqueAndUpdate(int(i), func(v geom.V3) geom.V3 { return affine.ApplyToPoint(v) })
	return nil
}

// MovePathComponents applies MovePathComponent to every index in idxs,
// in order. This is not atomic: a failure partway through leaves earlier
// elements moved.
func (p *PathComponentInfo) MovePathComponents(idxs []flattree.PathIndex, offset geom.V3) error {
	for _, i := range idxs {
		if err := p.MovePathComponent(i, offset); err != nil {
			return err
		}
	}
	return nil
}

// RotatePathComponents applies RotatePathComponent to every index in
// idxs, in order. Not atomic, for the same reason as MovePathComponents.
func (p *PathComponentInfo) RotatePathComponents(idxs []flattree.PathIndex, axis geom.V3, theta float64, center geom.V3) error {
	for _, i := range idxs {
		if err := p.RotatePathComponent(i, axis, theta, center); err != nil {
			return err
		}
	}
	return nil
}
