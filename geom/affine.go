package geom

// AffineXform is a rigid-body transform built as
// translate(center) . rotate(axis, theta) . translate(-center).
type AffineXform struct {
	center V3
	rot    Quat
}

// NewAffineXform builds the affine transform rotating by theta radians
// around axis, pivoting on center.
func NewAffineXform(axis V3, theta float64, center V3) AffineXform {
	return AffineXform{center: center, rot: FromAxisAngle(axis, theta)}
}

// Rotation returns the pure-rotation quaternion component of the xform.
func (a AffineXform) Rotation() Quat {
	return a.rot
}

// ApplyToPoint applies the full affine transform to a position.
func (a AffineXform) ApplyToPoint(p V3) V3 {
	shifted := p.Sub(a.center)
	rotated := a.rot.RotateVector(shifted)
	return rotated.Add(a.center)
}

// ApplyToRotation composes the xform's rotation onto an existing
// orientation quaternion.
func (a AffineXform) ApplyToRotation(q Quat) Quat {
	return q.Compose(a.rot)
}
