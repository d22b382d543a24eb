package cow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmsc-instrument/cow-instrument/cow"
)

var _ = Describe("Array", func() {
	It("reads back the values it was built with", func() {
		a := cow.New([]int{1, 2, 3})
		Expect(a.Len()).To(Equal(3))
		Expect(a.Get(1)).To(Equal(2))
	})

	It("lets a write-through handle see its own writes", func() {
		a := cow.New([]int{1, 2, 3})
		a.MakeUniqueAndSet(0, 9)
		Expect(a.Get(0)).To(Equal(9))
	})

	It("does not let a write through one clone affect the other", func() {
		a := cow.New([]int{1, 2, 3})
		b := a.Clone()

		a.MakeUniqueAndSet(0, 99)

		Expect(a.Get(0)).To(Equal(99))
		Expect(b.Get(0)).To(Equal(1))
	})

	It("shares reads before any write happens", func() {
		a := cow.New([]int{1, 2, 3})
		b := a.Clone()
		Expect(a.Snapshot()).To(Equal(b.Snapshot()))
		Expect(&a.Snapshot()[0]).To(BeIdenticalTo(&b.Snapshot()[0]))
	})

	It("applies an update function in place", func() {
		a := cow.New([]int{10, 20, 30})
		a.MakeUniqueAndUpdate(1, func(v int) int { return v + 5 })
		Expect(a.Get(1)).To(Equal(25))
	})

	It("fills the whole backing slice", func() {
		a := cow.New([]int{1, 2, 3})
		a.MakeUniqueAndFill([]int{7, 8, 9})
		Expect(a.Snapshot()).To(Equal([]int{7, 8, 9}))
	})

	It("lets a clone of a clone still isolate the original", func() {
		a := cow.New([]int{1})
		b := a.Clone()
		c := b.Clone()

		c.MakeUniqueAndSet(0, 42)

		Expect(a.Get(0)).To(Equal(1))
		Expect(b.Get(0)).To(Equal(1))
		Expect(c.Get(0)).To(Equal(42))
	})
})
