package flattree

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// builderState accumulates the SOA arrays while walking the component
// tree depth-first, pre-order, with sibling order equal to each
// Composite's insertion order.
type builderState struct {
	proxies      []Proxy
	positions    []geom.V3
	rotations    []geom.Quat
	componentIds []component.ComponentId

	pathComponentIndexes     []ComponentIndex
	detectorComponentIndexes []ComponentIndex

	entryPoints []geom.V3
	exitPoints  []geom.V3
	pathLengths []float64

	detectorIds []component.DetectorId

	sourcePathIndex PathIndex
	samplePathIndex PathIndex
	haveSource      bool
	haveSample      bool
}

// BuildFromRoot walks root depth-first and emits the flattened SOA
// representation described in §4.1. Construction fails if the discovered
// path components lack a marked source or sample.
func BuildFromRoot(root component.Component) (*FlatTree, error) {
	b := &builderState{
		sourcePathIndex: NoPath,
		samplePathIndex: NoPath,
	}

	b.visit(root, NoComponent)

	if !b.haveSource {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonNoSource}
	}
	if !b.haveSample {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonNoSample}
	}

	return &FlatTree{
		proxies:                  b.proxies,
		positions:                b.positions,
		rotations:                b.rotations,
		componentIds:             b.componentIds,
		pathComponentIndexes:     b.pathComponentIndexes,
		detectorComponentIndexes: b.detectorComponentIndexes,
		entryPoints:              b.entryPoints,
		exitPoints:               b.exitPoints,
		pathLengths:              b.pathLengths,
		detectorIds:              b.detectorIds,
		sourcePathIndex:          b.sourcePathIndex,
		samplePathIndex:          b.samplePathIndex,
	}, nil
}

// visit appends c (and, for composites, its children) to the builder
// state, linking it to parent, and returns c's newly assigned
// ComponentIndex.
func (b *builderState) visit(c component.Component, parent ComponentIndex) ComponentIndex {
	idx := ComponentIndex(len(b.proxies))

	b.proxies = append(b.proxies, Proxy{Parent: parent, Id: c.ID()})
	b.positions = append(b.positions, c.Pos())
	b.rotations = append(b.rotations, c.Rotation())
	b.componentIds = append(b.componentIds, c.ID())

	if parent != NoComponent {
		b.proxies[parent].Children = append(b.proxies[parent].Children, idx)
	}

	switch v := c.(type) {
	case *component.Detector:
		b.detectorComponentIndexes = append(b.detectorComponentIndexes, idx)
		b.detectorIds = append(b.detectorIds, v.DetId)

	case *component.PointSource:
		pathIdx := b.appendPathComponent(idx, c.Pos(), c.Rotation(), 0)
		if !b.haveSource {
			b.sourcePathIndex = pathIdx
			b.haveSource = true
		}

	case *component.PointSample:
		pathIdx := b.appendPathComponent(idx, c.Pos(), c.Rotation(), 0)
		if !b.haveSample {
			b.samplePathIndex = pathIdx
			b.haveSample = true
		}

	case *component.ParabolicGuide:
		length := v.Length()
		b.appendPathComponent(idx, c.Pos(), c.Rotation(), length)

	case *component.Composite:
		for _, child := range v.Children {
			b.visit(child, idx)
		}

	case *component.Null:
		// inert: proxy only, no detector or path contribution.
	}

	return idx
}

// appendPathComponent records the entry/exit/length triple for a path
// component, deriving the entry and exit points by offsetting length/2
// along the component's locally-oriented flight axis (+Z in its own
// frame). Point components have length 0, so entry == exit == pos.
func (b *builderState) appendPathComponent(idx ComponentIndex, pos geom.V3, rot geom.Quat, length float64) PathIndex {
	half := rot.RotateVector(geom.V3{Z: length / 2})
	entry := pos.Sub(half)
	exit := pos.Add(half)

	b.pathComponentIndexes = append(b.pathComponentIndexes, idx)
	b.entryPoints = append(b.entryPoints, entry)
	b.exitPoints = append(b.exitPoints, exit)
	b.pathLengths = append(b.pathLengths, length)

	return PathIndex(len(b.pathComponentIndexes) - 1)
}
