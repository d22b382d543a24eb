package geom_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/geom"
)

var _ = Describe("Quat", func() {
	It("rotates a vector 90 degrees around Z", func() {
		q := geom.FromAxisAngle(geom.V3{Z: 1}, math.Pi/2)
		v := geom.V3{X: 1}
		got := q.RotateVector(v)
		Expect(geom.ApproxEqual(got, geom.V3{Y: 1}, 1e-9)).To(BeTrue())
	})

	It("leaves a vector unchanged under the identity rotation", func() {
		v := geom.V3{X: 1, Y: 2, Z: 3}
		Expect(geom.ApproxEqual(geom.Identity.RotateVector(v), v, 1e-12)).To(BeTrue())
	})

	It("treats a zero-length axis as the identity", func() {
		q := geom.FromAxisAngle(geom.V3{}, math.Pi/3)
		Expect(geom.QuatApproxEqual(q, geom.Identity, 1e-12)).To(BeTrue())
	})

	It("composes two quarter turns into a half turn", func() {
		quarter := geom.FromAxisAngle(geom.V3{Z: 1}, math.Pi/2)
		half := quarter.Compose(quarter)
		want := geom.FromAxisAngle(geom.V3{Z: 1}, math.Pi)
		Expect(geom.QuatApproxEqual(half, want, 1e-9)).To(BeTrue())
	})

	It("undoes a rotation with its conjugate", func() {
		q := geom.FromAxisAngle(geom.V3{X: 1, Y: 1}, 1.2)
		v := geom.V3{X: 1, Y: -2, Z: 3}
		rotated := q.RotateVector(v)
		back := q.Conjugate().RotateVector(rotated)
		Expect(geom.ApproxEqual(back, v, 1e-9)).To(BeTrue())
	})

	It("treats q and -q as the same rotation", func() {
		q := geom.FromAxisAngle(geom.V3{Z: 1}, 0.7)
		neg := geom.Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
		Expect(geom.QuatApproxEqual(q, neg, 1e-12)).To(BeTrue())
	})
})
