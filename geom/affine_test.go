package geom_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/geom"
)

var _ = Describe("AffineXform", func() {
	It("rotates a point about a non-origin pivot", func() {
		xf := geom.NewAffineXform(geom.V3{Z: 1}, math.Pi/2, geom.V3{X: 1})
		got := xf.ApplyToPoint(geom.V3{X: 2})
		Expect(geom.ApproxEqual(got, geom.V3{X: 1, Y: 1}, 1e-9)).To(BeTrue())
	})

	It("leaves the pivot point fixed", func() {
		center := geom.V3{X: 1, Y: 2, Z: 3}
		xf := geom.NewAffineXform(geom.V3{Z: 1}, 1.3, center)
		Expect(geom.ApproxEqual(xf.ApplyToPoint(center), center, 1e-9)).To(BeTrue())
	})

	It("composes its rotation onto an existing orientation", func() {
		xf := geom.NewAffineXform(geom.V3{Z: 1}, math.Pi/2, geom.V3{})
		composed := xf.ApplyToRotation(geom.Identity)
		Expect(geom.QuatApproxEqual(composed, xf.Rotation(), 1e-9)).To(BeTrue())
	})

	It("converges to the identity within 1e-12 when rotated then inverse-rotated", func() {
		axis := geom.V3{X: 0.3, Y: 0.6, Z: 0.1}
		center := geom.V3{X: 1, Y: -2, Z: 3}
		theta := 0.77
		p := geom.V3{X: 5, Y: -1, Z: 2}

		fwd := geom.NewAffineXform(axis, theta, center)
		inv := geom.NewAffineXform(axis, -theta, center)

		rotated := fwd.ApplyToPoint(p)
		back := inv.ApplyToPoint(rotated)
		Expect(geom.ApproxEqual(back, p, 1e-12)).To(BeTrue())

		q := geom.Identity
		q = fwd.ApplyToRotation(q)
		q = inv.ApplyToRotation(q)
		Expect(geom.QuatApproxEqual(q, geom.Identity, 1e-12)).To(BeTrue())
	})
})
