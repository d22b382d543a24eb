package instrview

import (
	"github.com/dmsc-instrument/cow-instrument/cow"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// AssemblyIndex addresses one entry in an AssemblyInfo's list of
// tracked branch (composite) components.
type AssemblyIndex int

// AssemblyInfo projects onto branch components: translate/rotate applied
// to an assembly propagates to every component in its subtree. The
// underlying ComponentInfo owns the actual overlay mutation; AssemblyInfo
// is a dispatch shim that resolves an assembly index to a subtree and
// forwards to it.
type AssemblyInfo struct {
	ci         *ComponentInfo
	assemblies cow.Array[flattree.ComponentIndex]
}

// NewAssemblyInfo builds an AssemblyInfo tracking the given branch
// component indices (in the order supplied).
func NewAssemblyInfo(ci *ComponentInfo, topComponentIndexes []flattree.ComponentIndex) *AssemblyInfo {
	return &AssemblyInfo{
		ci:         ci,
		assemblies: cow.New(append([]flattree.ComponentIndex(nil), topComponentIndexes...)),
	}
}

// NAssemblies returns the number of tracked assemblies.
func (a *AssemblyInfo) NAssemblies() int { return a.assemblies.Len() }

func (a *AssemblyInfo) topComponentIndex(i AssemblyIndex) (flattree.ComponentIndex, error) {
	if int(i) < 0 || int(i) >= a.NAssemblies() {
		return 0, &instrerr.OutOfRangeError{Kind: instrerr.KindAssembly, Index: int(i), Size: a.NAssemblies()}
	}
	return a.assemblies.Get(int(i)), nil
}

// MoveAssemblyComponent resolves assemblyIndex's subtree via
// FlatTree.SubTreeIndexes and translates every component in it by
// offset. Not atomic: a failure partway through the subtree leaves it
// partially moved.
func (a *AssemblyInfo) MoveAssemblyComponent(i AssemblyIndex, offset geom.V3) error {
	top, err := a.topComponentIndex(i)
	if err != nil {
		return err
	}
	subtree, err := a.ci.Tree().SubTreeIndexes(top)
	if err != nil {
		return err
	}
	for _, idx := range subtree {
		if err := a.ci.Move(idx, offset); err != nil {
			return err
		}
	}
	return nil
}

// RotateAssemblyComponent resolves assemblyIndex's subtree the same way
// as MoveAssemblyComponent and rotates every component in it by the same
// affine transform. Not atomic, for the same reason.
func (a *AssemblyInfo) RotateAssemblyComponent(i AssemblyIndex, axis geom.V3, theta float64, center geom.V3) error {
	top, err := a.topComponentIndex(i)
	if err != nil {
		return err
	}
	subtree, err := a.ci.Tree().SubTreeIndexes(top)
	if err != nil {
		return err
	}
	for _, idx := range subtree {
		if err := a.ci.Rotate(idx, axis, theta, center); err != nil {
			return err
		}
	}
	return nil
}
