// Package cow implements a small reference-counted, copy-on-write array,
// the sharing primitive used by every mutable overlay in instrview.
//
// The observable contract mirrors the source material's custom
// reference-counted pointer with a copy-on-dereference hook: a view may
// share its backing slice with any number of other views at no copying
// cost, but the moment one of them writes through it, the writer first
// "makes unique" (clones the backing slice if more than one owner
// observes it), then mutates its own private copy in place.
package cow

import "sync/atomic"

// shared is the backing store referenced by any number of Array handles.
type shared[T any] struct {
	refs atomic.Int32
	vals []T
}

// Array is a copy-on-write handle onto a fixed-length slice of T.
// The zero value is not usable; construct with New.
type Array[T any] struct {
	s *shared[T]
}

// New wraps vals as a freshly owned (refcount 1) Array. Ownership of vals
// transfers to the Array; callers must not mutate vals afterwards except
// through the returned handle.
func New[T any](vals []T) Array[T] {
	s := &shared[T]{vals: vals}
	s.refs.Store(1)
	return Array[T]{s: s}
}

// Len returns the number of elements.
func (a Array[T]) Len() int {
	return len(a.s.vals)
}

// Get returns the element at i without bounds checking; callers
// index-check against Len() first (the views layer translates
// out-of-range access into instrerr.OutOfRangeError).
func (a Array[T]) Get(i int) T {
	return a.s.vals[i]
}

// Snapshot returns the current backing slice for bulk reads. The returned
// slice must be treated as read-only: it may be shared with other Array
// handles.
func (a Array[T]) Snapshot() []T {
	return a.s.vals
}

// Clone returns a new handle sharing the same backing slice, bumping the
// reference count. Use this whenever a view is duplicated (e.g. deriving
// a DetectorInfo's mask overlay from another DetectorInfo) so that the
// first subsequent write on either handle triggers a private copy.
func (a Array[T]) Clone() Array[T] {
	a.s.refs.Add(1)
	return Array[T]{s: a.s}
}

// MakeUniqueAndSet sets index i to v, first cloning the backing slice in
// place if more than one handle currently shares it. This is the single
// mutation primitive every overlay write goes through.
func (a *Array[T]) MakeUniqueAndSet(i int, v T) {
	a.makeUnique()
	a.s.vals[i] = v
}

// MakeUniqueAndUpdate applies fn to the current value at index i, first
// making the backing slice unique. fn's return value becomes the new
// element.
func (a *Array[T]) MakeUniqueAndUpdate(i int, fn func(T) T) {
	a.makeUnique()
	a.s.vals[i] = fn(a.s.vals[i])
}

// MakeUniqueAndFill replaces the entire backing slice with vals (which
// must be the same length), first making it unique. No view in instrview
// calls it; DetectorInfo rebuilds its mask/monitor overlays with New.
func (a *Array[T]) MakeUniqueAndFill(vals []T) {
	a.makeUnique()
	copy(a.s.vals, vals)
}

// makeUnique ensures a.s is exclusively owned by this handle, cloning the
// backing slice (and dropping this handle's share of the old refcount)
// if it currently isn't.
func (a *Array[T]) makeUnique() {
	if a.s.refs.Load() == 1 {
		return
	}

	cp := make([]T, len(a.s.vals))
	copy(cp, a.s.vals)
	a.s.refs.Add(-1)
	s := &shared[T]{vals: cp}
	s.refs.Store(1)
	a.s = s
}
