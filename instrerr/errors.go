// Package instrerr defines the typed error kinds surfaced by the
// instrument core, per the error handling design: no retries, no
// logging, callers inspect failures with errors.As.
package instrerr

import "fmt"

// InvalidInstrumentReason enumerates why tree construction failed.
type InvalidInstrumentReason int

const (
	// ReasonNoSource means no path component was marked as the source.
	ReasonNoSource InvalidInstrumentReason = iota
	// ReasonNoSample means no path component was marked as the sample.
	ReasonNoSample
	// ReasonLengthMismatch means SOA constructor arrays disagree in length.
	ReasonLengthMismatch
	// ReasonRootRemoved means a purge or other tree surgery would remove
	// the tree's root, leaving no component to attach survivors under.
	ReasonRootRemoved
)

func (r InvalidInstrumentReason) String() string {
	switch r {
	case ReasonNoSource:
		return "no source"
	case ReasonNoSample:
		return "no sample"
	case ReasonLengthMismatch:
		return "length mismatch"
	case ReasonRootRemoved:
		return "root removed"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// InvalidInstrumentError reports that a tree or SOA payload could not be
// turned into a valid FlatTree.
type InvalidInstrumentError struct {
	Reason InvalidInstrumentReason
}

func (e *InvalidInstrumentError) Error() string {
	return fmt.Sprintf("invalid instrument: %s", e.Reason)
}

// IndexKind identifies which index space an OutOfRangeError refers to.
type IndexKind int

const (
	KindComponent IndexKind = iota
	KindDetector
	KindPathComponent
	KindSpectrum
	KindAssembly
)

func (k IndexKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindDetector:
		return "detector"
	case KindPathComponent:
		return "path component"
	case KindSpectrum:
		return "spectrum"
	case KindAssembly:
		return "assembly"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OutOfRangeError reports an indexed accessor called with index >= size.
type OutOfRangeError struct {
	Kind  IndexKind
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Size)
}

// InstrumentShapeMismatchError reports that CloneWithInstrumentTree was
// called with a FlatTree whose detector count differs from the original.
type InstrumentShapeMismatchError struct {
	Want int
	Got  int
}

func (e *InstrumentShapeMismatchError) Error() string {
	return fmt.Sprintf("instrument shape mismatch: want %d detectors, got %d", e.Want, e.Got)
}

// DeserializeIncompleteError reports that a mapper-style constructor was
// used before all mandatory fields were supplied.
type DeserializeIncompleteError struct {
	Field string
}

func (e *DeserializeIncompleteError) Error() string {
	return fmt.Sprintf("deserialize incomplete: missing field %q", e.Field)
}
