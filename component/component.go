// Package component defines the polymorphic instrument geometry
// primitives — Detector, PointSource, PointSample, ParabolicGuide,
// Composite, and Null — plus the closed set of mutation Commands that
// operate on them. Dispatch is by type switch over a closed set of
// variants rather than by virtual method, per the tagged-union design
// chosen for this rewrite.
package component

import (
	"math"

	"github.com/dmsc-instrument/cow-instrument/geom"
)

// Kind enumerates the concrete component variants.
type Kind int

const (
	KindDetector Kind = iota
	KindPointSource
	KindPointSample
	KindParabolicGuide
	KindComposite
	KindNull
)

// Component is the closed set of geometry node variants. Every concrete
// type below implements it. Callers that need variant-specific behavior
// should type-switch on the concrete type or on Kind().
type Component interface {
	ID() ComponentId
	Kind() Kind
	Pos() geom.V3
	Rotation() geom.Quat
}

// IsPathComponent reports whether c contributes to the neutron flight
// path (source, sample, or guide — anything but Detector, Composite, and
// Null).
func IsPathComponent(c Component) bool {
	switch c.Kind() {
	case KindPointSource, KindPointSample, KindParabolicGuide:
		return true
	default:
		return false
	}
}

// Detector is a component that also carries a DetectorId.
type Detector struct {
	Id       ComponentId
	DetId    DetectorId
	Position geom.V3
	Rot      geom.Quat
}

func (d *Detector) ID() ComponentId    { return d.Id }
func (d *Detector) Kind() Kind         { return KindDetector }
func (d *Detector) Pos() geom.V3       { return d.Position }
func (d *Detector) Rotation() geom.Quat { return d.Rot }

// PointSource marks the unique neutron source along the flight path.
type PointSource struct {
	Id       ComponentId
	Position geom.V3
	Rot      geom.Quat
}

func (p *PointSource) ID() ComponentId    { return p.Id }
func (p *PointSource) Kind() Kind         { return KindPointSource }
func (p *PointSource) Pos() geom.V3       { return p.Position }
func (p *PointSource) Rotation() geom.Quat { return p.Rot }

// PointSample marks the unique sample position along the flight path.
type PointSample struct {
	Id       ComponentId
	Position geom.V3
	Rot      geom.Quat
}

func (p *PointSample) ID() ComponentId    { return p.Id }
func (p *PointSample) Kind() Kind         { return KindPointSample }
func (p *PointSample) Pos() geom.V3       { return p.Position }
func (p *PointSample) Rotation() geom.Quat { return p.Rot }

// ParabolicGuide models a neutron guide whose cross-section follows
// y = h*(1 - x^2/a^2) for x in [-a, a].
type ParabolicGuide struct {
	Id       ComponentId
	Position geom.V3
	Rot      geom.Quat
	A, H     float64
}

func (g *ParabolicGuide) ID() ComponentId    { return g.Id }
func (g *ParabolicGuide) Kind() Kind         { return KindParabolicGuide }
func (g *ParabolicGuide) Pos() geom.V3       { return g.Position }
func (g *ParabolicGuide) Rotation() geom.Quat { return g.Rot }

// Length returns the arc length of the parabola, using the
// mathematically correct closed form sqrt(a^2+4h^2) + (a^2/(2h))*asinh(2h/a).
// As h -> 0 the parabola degenerates to a flat segment of length 2a; the
// formula is evaluated in that limit to avoid a division by zero.
func (g *ParabolicGuide) Length() float64 {
	if g.H == 0 {
		return 2 * g.A
	}
	return math.Sqrt(g.A*g.A+4*g.H*g.H) + (g.A*g.A/(2*g.H))*math.Asinh(2*g.H/g.A)
}

// Composite is an ordered, owned list of children. Its own position and
// rotation are the mean of its children's, computed on demand.
type Composite struct {
	Id       ComponentId
	Children []Component
}

func (c *Composite) ID() ComponentId { return c.Id }
func (c *Composite) Kind() Kind      { return KindComposite }

func (c *Composite) Pos() geom.V3 {
	positions := make([]geom.V3, len(c.Children))
	for i, ch := range c.Children {
		positions[i] = ch.Pos()
	}
	return geom.Mean(positions)
}

func (c *Composite) Rotation() geom.Quat {
	if len(c.Children) == 0 {
		return geom.Identity
	}
	// Mean orientation via the average of the quaternion components,
	// renormalized; adequate as a "representative orientation" per spec.
	var sum geom.Quat
	for _, ch := range c.Children {
		r := ch.Rotation()
		sum.W += r.W
		sum.X += r.X
		sum.Y += r.Y
		sum.Z += r.Z
	}
	n := float64(len(c.Children))
	sum.W /= n
	sum.X /= n
	sum.Y /= n
	sum.Z /= n
	return sum.Normalize()
}

// AddChild appends a child component, preserving insertion order (the
// sibling order used by the depth-first tree parser).
func (c *Composite) AddChild(ch Component) {
	c.Children = append(c.Children, ch)
}

// Null is an inert component: no detector, no path contribution.
type Null struct {
	Id ComponentId
}

func (n *Null) ID() ComponentId    { return n.Id }
func (n *Null) Kind() Kind         { return KindNull }
func (n *Null) Pos() geom.V3       { return geom.V3{} }
func (n *Null) Rotation() geom.Quat { return geom.Identity }
