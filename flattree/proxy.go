package flattree

import "github.com/dmsc-instrument/cow-instrument/component"

// Proxy is a FlatTree record holding a node's parent/children links plus
// its immutable component id.
type Proxy struct {
	Parent   ComponentIndex   // NoComponent for the root
	Children []ComponentIndex // ordered, empty for leaves
	Id       component.ComponentId
}

// IsRoot reports whether p has no parent.
func (p Proxy) IsRoot() bool {
	return p.Parent == NoComponent
}
