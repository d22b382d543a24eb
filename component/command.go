package component

import "github.com/dmsc-instrument/cow-instrument/geom"

// Command is the closed set of mutation commands that can be applied to a
// component subtree via a view's Modify entry point. The set is small and
// closed, so it is represented as a sum type matched by type switch at the
// call site rather than as an open Execute(Component) interface.
type Command interface {
	isCommand()
}

// MoveCommand translates a single component's position by Offset.
type MoveCommand struct {
	Offset geom.V3
}

func (MoveCommand) isCommand() {}

// RotateCommand rotates a single component in place around Axis by
// Theta radians, pivoting on Center.
type RotateCommand struct {
	Axis   geom.V3
	Theta  float64
	Center geom.V3
}

func (RotateCommand) isCommand() {}

// DetectorPurgeCommand removes the named detectors from the component
// tree, cascading through composites. Applying it may force the owning
// FlatTree to be rebuilt, which Modify signals via its return value.
type DetectorPurgeCommand struct {
	DetectorIds []DetectorId
}

func (DetectorPurgeCommand) isCommand() {}
