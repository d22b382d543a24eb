package instrview

import "math"

// ScanTime describes one interval of a scanning geometry: an absolute
// start time in seconds and a duration in seconds.
type ScanTime struct {
	Start    int64
	Duration uint32
}

// DefaultScanTime is the single interval used by non-scanning views: it
// starts at zero and covers the entire run.
var DefaultScanTime = ScanTime{Start: 0, Duration: math.MaxUint32}
