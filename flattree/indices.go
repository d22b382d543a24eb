package flattree

// ComponentIndex, DetectorIndex, PathIndex, and TimeIndex are dense
// indices into the FlatTree's structure-of-arrays payload. Their
// lifetimes are tied to the FlatTree (or, for TimeIndex, to a view's
// scan expansion) that produced them.
type ComponentIndex int

// NoComponent is the sentinel Parent value for the root proxy.
const NoComponent ComponentIndex = -1

type DetectorIndex int

type PathIndex int

// NoPath is the sentinel returned when a component has no path index.
const NoPath PathIndex = -1

type TimeIndex int
