// Package sample builds concrete, ready-to-flatten instrument component
// trees for demos and tests. It plays the role easyconf plays for
// dataflow arrays: a convenience layer over the raw component
// constructors, not part of the core geometry model.
package sample

import (
	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/geom"
)

// FourSideDetectorArray builds a simple, symmetric instrument: a source
// and sample on the beam axis, connected by a single parabolic guide,
// with an n x n square grid of detectors centered on the beam axis
// guideLength downstream of the sample, spaced apart by spacing, lying in
// the plane perpendicular to the beam.
//
// Component ids are assigned sequentially starting at firstId, in the
// same order the pieces are created below (root composite, guide, source,
// sample, detector composite, then detectors row-major), mirroring the deterministic, index-derived
// naming easyconf.CreateFourSideArray uses for its cores and buffers.
func FourSideDetectorArray(n int, spacing, guideLength, sourceToGuide float64, firstId component.ComponentId) component.Component {
	id := firstId
	next := func() component.ComponentId {
		v := id
		id++
		return v
	}

	root := &component.Composite{Id: next()}

	guide := &component.ParabolicGuide{
		Id:       next(),
		Position: geom.V3{Z: sourceToGuide + guideLength/2},
		Rot:      geom.Identity,
		A:        guideLength / 2,
		H:        guideLength / 20,
	}
	root.AddChild(guide)

	source := &component.PointSource{
		Id:       next(),
		Position: geom.V3{},
		Rot:      geom.Identity,
	}
	root.AddChild(source)

	samplePos := geom.V3{Z: sourceToGuide + guideLength}
	sample := &component.PointSample{
		Id:       next(),
		Position: samplePos,
		Rot:      geom.Identity,
	}
	root.AddChild(sample)

	detectors := &component.Composite{Id: next()}
	half := float64(n-1) / 2
	detId := component.DetectorId(1)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			pos := geom.V3{
				X: samplePos.X + (float64(col)-half)*spacing,
				Y: samplePos.Y + (float64(row)-half)*spacing,
				Z: samplePos.Z + guideLength,
			}
			detectors.AddChild(&component.Detector{
				Id:       next(),
				DetId:    detId,
				Position: pos,
				Rot:      geom.Identity,
			})
			detId++
		}
	}
	root.AddChild(detectors)

	return root
}

// SingleDetectorInstrument builds the smallest legal instrument: a
// source, a sample at distance l1 from it, and a single detector at
// distance l2 from the sample, all on the beam axis. Useful as the
// minimal fixture for L1/L2 tests.
func SingleDetectorInstrument(l1, l2 float64, firstId component.ComponentId) component.Component {
	id := firstId
	next := func() component.ComponentId {
		v := id
		id++
		return v
	}

	root := &component.Composite{Id: next()}

	source := &component.PointSource{Id: next(), Position: geom.V3{}, Rot: geom.Identity}
	root.AddChild(source)

	sample := &component.PointSample{Id: next(), Position: geom.V3{Z: l1}, Rot: geom.Identity}
	root.AddChild(sample)

	detector := &component.Detector{
		Id:       next(),
		DetId:    component.DetectorId(1),
		Position: geom.V3{Z: l1 + l2},
		Rot:      geom.Identity,
	}
	root.AddChild(detector)

	return root
}

// TwoDetectorInstrument builds a source, a sample at distance l1 from it,
// and two detectors at distinct sample-to-detector distances l2a and l2b,
// offset from the beam axis so neither detector sits behind the other.
// Useful for exercising spectrum-level aggregation across genuinely
// different L2 values rather than a single detector counted twice.
func TwoDetectorInstrument(l1, l2a, l2b float64, firstId component.ComponentId) component.Component {
	id := firstId
	next := func() component.ComponentId {
		v := id
		id++
		return v
	}

	root := &component.Composite{Id: next()}

	source := &component.PointSource{Id: next(), Position: geom.V3{}, Rot: geom.Identity}
	root.AddChild(source)

	sample := &component.PointSample{Id: next(), Position: geom.V3{Z: l1}, Rot: geom.Identity}
	root.AddChild(sample)

	detectors := &component.Composite{Id: next()}
	detectors.AddChild(&component.Detector{
		Id:       next(),
		DetId:    component.DetectorId(1),
		Position: geom.V3{X: l2a, Z: l1},
		Rot:      geom.Identity,
	})
	detectors.AddChild(&component.Detector{
		Id:       next(),
		DetId:    component.DetectorId(2),
		Position: geom.V3{X: l2b, Z: l1},
		Rot:      geom.Identity,
	})
	root.AddChild(detectors)

	return root
}
