package flattree

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/dmsc-instrument/cow-instrument/instrerr"
)

// NoDetector is the sentinel DetectorIndex meaning "this detector no
// longer exists", returned by PurgeResult.DetectorIndexMap for a purged
// slot.
const NoDetector DetectorIndex = -1

// PurgeResult bundles the rebuilt FlatTree together with the remaps a
// caller needs to reproject any state it keeps indexed against the old
// tree — positions/rotations keyed by ComponentIndex, or per-detector
// overlays (mask, monitor, L2 cache, spectrum membership) keyed by
// DetectorIndex — onto the new one, instead of rebuilding that state
// from scratch.
type PurgeResult struct {
	Tree *FlatTree

	// ComponentRemap has length equal to the old tree's ComponentSize().
	// ComponentRemap[old] is the surviving component's new index, or
	// NoComponent if old was removed.
	ComponentRemap []ComponentIndex

	// DetectorRemap has length equal to Tree.NDetectors(). DetectorRemap[new]
	// is that surviving detector's index in the old tree.
	DetectorRemap []DetectorIndex

	// DetectorIndexMap has length equal to the old tree's NDetectors().
	// DetectorIndexMap[old] is the surviving detector's new index, or
	// NoDetector if old was removed. The inverse of DetectorRemap.
	DetectorIndexMap []DetectorIndex
}

// identityPurgeResult reports tree unchanged, with identity remaps, for
// the no-op cases (no ids given, or none of them name a detector present
// in tree).
func identityPurgeResult(tree *FlatTree) PurgeResult {
	componentRemap := make([]ComponentIndex, tree.ComponentSize())
	for i := range componentRemap {
		componentRemap[i] = ComponentIndex(i)
	}
	detectorRemap := make([]DetectorIndex, tree.NDetectors())
	detectorIndexMap := make([]DetectorIndex, tree.NDetectors())
	for i := range detectorRemap {
		detectorRemap[i] = DetectorIndex(i)
		detectorIndexMap[i] = DetectorIndex(i)
	}
	return PurgeResult{
		Tree:             tree,
		ComponentRemap:   componentRemap,
		DetectorRemap:    detectorRemap,
		DetectorIndexMap: detectorIndexMap,
	}
}

// Purge implements component.DetectorPurgeCommand: it produces a new
// FlatTree with the named detectors (and only them — detectors are
// always leaves, never carrying their own subtree) removed from the
// topology, along with the remaps needed to carry any ComponentIndex- or
// DetectorIndex-keyed overlay forward onto it. tree itself is untouched;
// FlatTree is immutable. If ids is empty, or none of them name a
// detector present in tree, Purge returns tree unchanged (PurgeResult.Tree
// == tree) with identity remaps.
func Purge(tree *FlatTree, ids []component.DetectorId) (PurgeResult, error) {
	if len(ids) == 0 {
		return identityPurgeResult(tree), nil
	}

	remove := make(map[component.DetectorId]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	removedComponent := make(map[ComponentIndex]bool)
	for i, id := range tree.detectorIds {
		if remove[id] {
			removedComponent[tree.detectorComponentIndexes[i]] = true
		}
	}
	if len(removedComponent) == 0 {
		return identityPurgeResult(tree), nil
	}

	for idx := range removedComponent {
		if tree.proxies[idx].IsRoot() {
			return PurgeResult{}, &instrerr.InvalidInstrumentError{Reason: instrerr.ReasonRootRemoved}
		}
	}

	n := len(tree.proxies)
	remap := make([]ComponentIndex, n)
	next := ComponentIndex(0)
	for i := 0; i < n; i++ {
		if removedComponent[ComponentIndex(i)] {
			remap[i] = NoComponent
			continue
		}
		remap[i] = next
		next++
	}

	newProxies := make([]Proxy, 0, int(next))
	newPositions := make([]geom.V3, 0, int(next))
	newRotations := make([]geom.Quat, 0, int(next))
	newComponentIds := make([]component.ComponentId, 0, int(next))

	for i := 0; i < n; i++ {
		if removedComponent[ComponentIndex(i)] {
			continue
		}
		old := tree.proxies[i]

		var newParent ComponentIndex
		if old.IsRoot() {
			newParent = NoComponent
		} else {
			newParent = remap[old.Parent]
		}

		newChildren := make([]ComponentIndex, 0, len(old.Children))
		for _, c := range old.Children {
			if removedComponent[c] {
				continue
			}
			newChildren = append(newChildren, remap[c])
		}

		newProxies = append(newProxies, Proxy{Parent: newParent, Children: newChildren, Id: old.Id})
		newPositions = append(newPositions, tree.positions[i])
		newRotations = append(newRotations, tree.rotations[i])
		newComponentIds = append(newComponentIds, tree.componentIds[i])
	}

	newDetectorComponentIndexes := make([]ComponentIndex, 0, len(tree.detectorComponentIndexes))
	newDetectorIds := make([]component.DetectorId, 0, len(tree.detectorIds))
	detectorRemap := make([]DetectorIndex, 0, len(tree.detectorComponentIndexes))
	detectorIndexMap := make([]DetectorIndex, len(tree.detectorComponentIndexes))
	for i, idx := range tree.detectorComponentIndexes {
		if removedComponent[idx] {
			detectorIndexMap[i] = NoDetector
			continue
		}
		detectorIndexMap[i] = DetectorIndex(len(newDetectorComponentIndexes))
		detectorRemap = append(detectorRemap, DetectorIndex(i))
		newDetectorComponentIndexes = append(newDetectorComponentIndexes, remap[idx])
		newDetectorIds = append(newDetectorIds, tree.detectorIds[i])
	}

	// Detectors are leaves, never path components, so pathComponentIndexes
	// never references a removed index — only remapping is needed.
	newPathComponentIndexes := make([]ComponentIndex, len(tree.pathComponentIndexes))
	for i, idx := range tree.pathComponentIndexes {
		newPathComponentIndexes[i] = remap[idx]
	}

	newTree := &FlatTree{
		proxies:                  newProxies,
		positions:                newPositions,
		rotations:                newRotations,
		componentIds:             newComponentIds,
		pathComponentIndexes:     newPathComponentIndexes,
		detectorComponentIndexes: newDetectorComponentIndexes,
		entryPoints:              append([]geom.V3(nil), tree.entryPoints...),
		exitPoints:               append([]geom.V3(nil), tree.exitPoints...),
		pathLengths:              append([]float64(nil), tree.pathLengths...),
		detectorIds:              newDetectorIds,
		sourcePathIndex:          tree.sourcePathIndex,
		samplePathIndex:          tree.samplePathIndex,
	}

	return PurgeResult{
		Tree:             newTree,
		ComponentRemap:   remap,
		DetectorRemap:    detectorRemap,
		DetectorIndexMap: detectorIndexMap,
	}, nil
}
