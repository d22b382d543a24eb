// Package flattree implements the tree parser and the immutable,
// structure-of-arrays FlatTree container that every view in instrview
// shares.
package flattree

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// FlatTree is the immutable, reference-shareable flattened representation
// of an instrument geometry. Once built it is never mutated; any number
// of views may share one FlatTree concurrently.
type FlatTree struct {
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
}

// ComponentSize returns N, the number of components in the tree.
func (t *FlatTree) ComponentSize() int { return len(t.proxies) }

// NDetectors returns the number of detector components.
func (t *FlatTree) NDetectors() int { return len(t.detectorComponentIndexes) }

// NPathComponents returns the number of path components.
func (t *FlatTree) NPathComponents() int { return len(t.pathComponentIndexes) }

// ProxyAt returns the proxy record for component index i.
func (t *FlatTree) ProxyAt(i ComponentIndex) Proxy { return t.proxies[i] }

// Proxies returns the full proxy slice, in FlatTree discovery order.
func (t *FlatTree) Proxies() []Proxy { return t.proxies }

// RootProxy returns the unique proxy with no parent.
func (t *FlatTree) RootProxy() Proxy {
	for _, p := range t.proxies {
		if p.IsRoot() {
			return p
		}
	}
	panic("flattree: no root proxy — invariant violated")
}

// RootIndex returns the component index of the root.
func (t *FlatTree) RootIndex() ComponentIndex {
	for i, p := range t.proxies {
		if p.IsRoot() {
			return ComponentIndex(i)
		}
	}
	panic("flattree: no root proxy — invariant violated")
}

// StartPositions returns the starting positions, indexed by ComponentIndex.
func (t *FlatTree) StartPositions() []geom.V3 { return t.positions }

// StartRotations returns the starting rotations, indexed by ComponentIndex.
func (t *FlatTree) StartRotations() []geom.Quat { return t.rotations }

// StartEntryPoints returns entry points, indexed by PathIndex.
func (t *FlatTree) StartEntryPoints() []geom.V3 { return t.entryPoints }

// StartExitPoints returns exit points, indexed by PathIndex.
func (t *FlatTree) StartExitPoints() []geom.V3 { return t.exitPoints }

// PathLengths returns per-path-component lengths, indexed by PathIndex.
func (t *FlatTree) PathLengths() []float64 { return t.pathLengths }

// DetectorComponentIndexes returns, for each DetectorIndex, the
// corresponding ComponentIndex.
func (t *FlatTree) DetectorComponentIndexes() []ComponentIndex {
	return t.detectorComponentIndexes
}

// PathComponentIndexes returns, for each PathIndex, the corresponding
// ComponentIndex.
func (t *FlatTree) PathComponentIndexes() []ComponentIndex {
	return t.pathComponentIndexes
}

// DetectorIds returns, for each DetectorIndex, the component's DetectorId.
func (t *FlatTree) DetectorIds() []component.DetectorId { return t.detectorIds }

// ComponentIds returns, for each ComponentIndex, the component's Id.
func (t *FlatTree) ComponentIds() []component.ComponentId { return t.componentIds }

// SourcePathIndex returns the PathIndex of the unique marked source.
func (t *FlatTree) SourcePathIndex() PathIndex { return t.sourcePathIndex }

// SamplePathIndex returns the PathIndex of the unique marked sample.
func (t *FlatTree) SamplePathIndex() PathIndex { return t.samplePathIndex }

// SourceComponentIndex returns the ComponentIndex of the source.
func (t *FlatTree) SourceComponentIndex() ComponentIndex {
	return t.pathComponentIndexes[t.sourcePathIndex]
}

// SampleComponentIndex returns the ComponentIndex of the sample.
func (t *FlatTree) SampleComponentIndex() ComponentIndex {
	return t.pathComponentIndexes[t.samplePathIndex]
}

// NextLevelIndexes returns the immediate children of i.
func (t *FlatTree) NextLevelIndexes(i ComponentIndex) ([]ComponentIndex, error) {
	if int(i) < 0 || int(i) >= len(t.proxies) {
		return nil, &instrerr.OutOfRangeError{Kind: instrerr.KindComponent, Index: int(i), Size: len(t.proxies)}
	}
	return append([]ComponentIndex(nil), t.proxies[i].Children...), nil
}

// SubTreeIndexes returns the breadth-first traversal of the subtree
// rooted at i: i itself is first, then each level's children in stored
// sibling order.
func (t *FlatTree) SubTreeIndexes(i ComponentIndex) ([]ComponentIndex, error) {
	if int(i) < 0 || int(i) >= len(t.proxies) {
		return nil, &instrerr.OutOfRangeError{Kind: instrerr.KindComponent, Index: int(i), Size: len(t.proxies)}
	}

	result := []ComponentIndex{i}
	queue := []ComponentIndex{i}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children := t.proxies[cur].Children
		result = append(result, children...)
		queue = append(queue, children...)
	}
	return result, nil
}

// FillDetectorMap inserts id -> DetectorIndex for every detector into m,
// preserving the first occurrence on id collisions.
func (t *FlatTree) FillDetectorMap(m map[component.DetectorId]DetectorIndex) {
	for i, id := range t.detectorIds {
		if _, exists := m[id]; exists {
			continue
		}
		m[id] = DetectorIndex(i)
	}
}

// FillComponentMap inserts id -> ComponentIndex for every component into
// m, preserving the first occurrence on id collisions.
func (t *FlatTree) FillComponentMap(m map[component.ComponentId]ComponentIndex) {
	for i, id := range t.componentIds {
		if _, exists := m[id]; exists {
			continue
		}
		m[id] = ComponentIndex(i)
	}
}

// Equal reports structural equality: the same proxies (ids and topology)
// in the same order. Positions and rotations are metadata and are not
// compared.
func (t *FlatTree) Equal(other *FlatTree) bool {
	if len(t.proxies) != len(other.proxies) {
		return false
	}
	for i := range t.proxies {
		a, b := t.proxies[i], other.proxies[i]
		if a.Parent != b.Parent || a.Id != b.Id {
			return false
		}
		if len(a.Children) != len(b.Children) {
			return false
		}
		for j := range a.Children {
			if a.Children[j] != b.Children[j] {
				return false
			}
		}
	}
	return true
}

// SOA bundles the arrays accepted by FromSOA, mirroring the external
// deserializer contract in §6 of the design.
type SOA struct {
	Proxies                  []Proxy
	Positions                []geom.V3
	Rotations                []geom.Quat
	ComponentIds             []component.ComponentId
	EntryPoints              []geom.V3
	ExitPoints               []geom.V3
	PathLengths              []float64
	PathComponentIndexes     []ComponentIndex
	DetectorComponentIndexes []ComponentIndex
	DetectorIds              []component.DetectorId
	SourceIndex              PathIndex
	SampleIndex              PathIndex
}

// FromSOA reconstructs a FlatTree from pre-assembled SOA arrays, as used
// by a deserializer. It validates only that array lengths agree;
// consistency of ids, parent/child links, and path indices is the
// caller's contract.
func FromSOA(soa SOA) (*FlatTree, error) {
	n := len(soa.Proxies)
	if len(soa.Positions) != n || len(soa.Rotations) != n || len(soa.ComponentIds) != n {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
	}

	np := len(soa.PathComponentIndexes)
	if len(soa.EntryPoints) != np || len(soa.ExitPoints) != np || len(soa.PathLengths) != np {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
	}

	if len(soa.DetectorIds) != len(soa.DetectorComponentIndexes) {
		return nil, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonLengthMismatch}
	}

	return &FlatTree{
		proxies:                  soa.Proxies,
		positions:                soa.Positions,
		rotations:                soa.Rotations,
		componentIds:             soa.ComponentIds,
		pathComponentIndexes:     soa.PathComponentIndexes,
		detectorComponentIndexes: soa.DetectorComponentIndexes,
		entryPoints:              soa.EntryPoints,
		exitPoints:               soa.ExitPoints,
		pathLengths:              soa.PathLengths,
		detectorIds:              soa.DetectorIds,
		sourcePathIndex:          soa.SourceIndex,
		samplePathIndex:          soa.SampleIndex,
	}, nil
}

// ToSOA disassembles t back into its SOA arrays, the inverse of FromSOA.
func (t *FlatTree) ToSOA() SOA {
	return SOA{
		Proxies:                  append([]Proxy(nil), t.proxies...),
		Positions:                append([]geom.V3(nil), t.positions...),
		Rotations:                append([]geom.Quat(nil), t.rotations...),
		ComponentIds:             append([]component.ComponentId(nil), t.componentIds...),
		EntryPoints:              append([]geom.V3(nil), t.entryPoints...),
		ExitPoints:               append([]geom.V3(nil), t.exitPoints...),
		PathLengths:              append([]float64(nil), t.pathLengths...),
		PathComponentIndexes:     append([]ComponentIndex(nil), t.pathComponentIndexes...),
		DetectorComponentIndexes: append([]ComponentIndex(nil), t.detectorComponentIndexes...),
		DetectorIds:              append([]component.DetectorId(nil), t.detectorIds...),
		SourceIndex:              t.sourcePathIndex,
		SampleIndex:              t.samplePathIndex,
	}
}
