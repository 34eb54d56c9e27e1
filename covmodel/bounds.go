package covmodel

import (
	"fmt"
	"math"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// BoundType states whether each side of an interval is open or closed.
// The two letters refer to the lower and upper side in that order.
type BoundType string

const (
	// BoundOpenOpen is the open interval (min, max).
	BoundOpenOpen BoundType = "oo"
	// BoundClosedClosed is the closed interval [min, max].
	BoundClosedClosed BoundType = "cc"
	// BoundOpenClosed is the half-open interval (min, max].
	BoundOpenClosed BoundType = "oc"
	// BoundClosedOpen is the half-open interval [min, max).
	BoundClosedOpen BoundType = "co"
)

// Check classifies a value against a bounds interval.
type Check int

const (
	// CheckOK means the value lies inside the interval.
	CheckOK Check = iota
	// CheckBelowMin means the value is below a closed lower bound.
	CheckBelowMin
	// CheckBelowMinStrict means the value is at or below an open lower bound.
	CheckBelowMinStrict
	// CheckAboveMax means the value is above a closed upper bound.
	CheckAboveMax
	// CheckAboveMaxStrict means the value is at or above an open upper bound.
	CheckAboveMaxStrict
)

// Bounds is an interval constraint for a single model parameter. Every
// fixed parameter (variance, length scale, nugget) and every optional
// family parameter carries one.
type Bounds struct {
	Min, Max float64
	Type     BoundType
}

// NewBounds returns a closed interval [min, max].
func NewBounds(min, max float64) Bounds {
	return Bounds{Min: min, Max: max, Type: BoundClosedClosed}
}

// String formats the interval in mathematical notation, e.g. "(0, 2]".
func (b Bounds) String() string {
	lo, hi := "[", "]"
	switch b.Type {
	case BoundOpenOpen:
		lo, hi = "(", ")"
	case BoundOpenClosed:
		lo = "("
	case BoundClosedOpen:
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, b.Min, b.Max, hi)
}

func (b Bounds) invalidReason() string {
	switch b.Type {
	case BoundOpenOpen, BoundClosedClosed, BoundOpenClosed, BoundClosedOpen:
	default:
		return fmt.Sprintf("unknown interval type %q", string(b.Type))
	}
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) {
		return "NaN endpoint"
	}
	if b.Min > b.Max {
		return "lower bound exceeds upper bound"
	}
	if b.Min == b.Max && b.Type != BoundClosedClosed {
		return "degenerate interval must be closed on both sides"
	}
	return ""
}

// Validate reports whether the interval is well formed: a known type,
// Min <= Max, and equal endpoints only when both sides are closed.
func (b Bounds) Validate() error {
	if reason := b.invalidReason(); reason != "" {
		return gserrors.NewBoundsError("", math.NaN(), b.String(), reason)
	}
	return nil
}

// Classify locates a value relative to the interval.
func (b Bounds) Classify(v float64) Check {
	if b.Type == BoundOpenOpen || b.Type == BoundOpenClosed {
		if v <= b.Min {
			return CheckBelowMinStrict
		}
	} else if v < b.Min {
		return CheckBelowMin
	}
	if b.Type == BoundOpenOpen || b.Type == BoundClosedOpen {
		if v >= b.Max {
			return CheckAboveMaxStrict
		}
	} else if v > b.Max {
		return CheckAboveMax
	}
	return CheckOK
}

// Contains reports whether v lies inside the interval.
func (b Bounds) Contains(v float64) bool {
	return b.Classify(v) == CheckOK
}

// DefaultValue picks a representative in-bounds value: the midpoint for a
// finite interval, one unit inside a single finite endpoint, and zero for
// the unbounded line.
func (b Bounds) DefaultValue() float64 {
	loFinite := !math.IsInf(b.Min, -1)
	hiFinite := !math.IsInf(b.Max, 1)
	switch {
	case loFinite && hiFinite:
		return (b.Min + b.Max) / 2
	case loFinite:
		return b.Min + 1
	case hiFinite:
		return b.Max - 1
	default:
		return 0
	}
}

// violation turns a non-OK classification into a BoundsError.
func (b Bounds) violation(param string, v float64, c Check) error {
	var reason string
	switch c {
	case CheckBelowMin:
		reason = fmt.Sprintf("needs to be >= %g", b.Min)
	case CheckBelowMinStrict:
		reason = fmt.Sprintf("needs to be > %g", b.Min)
	case CheckAboveMax:
		reason = fmt.Sprintf("needs to be <= %g", b.Max)
	case CheckAboveMaxStrict:
		reason = fmt.Sprintf("needs to be < %g", b.Max)
	default:
		return nil
	}
	return gserrors.NewBoundsError(param, v, b.String(), reason)
}

// check validates v against the interval, returning a BoundsError on
// violation.
func (b Bounds) check(param string, v float64) error {
	return b.violation(param, v, b.Classify(v))
}
