package component

// ComponentId is a nominal handle identifying a component node. It is
// distinct from DetectorId so the two cannot be mixed up at compile time.
type ComponentId int64

// DetectorId is a nominal handle identifying a detector, separate from its
// owning component's ComponentId.
type DetectorId int64
