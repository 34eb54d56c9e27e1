// Package errors provides the error handling and warning system used across
// the library. It mirrors the exception/warning split of classical
// geostatistics toolkits: hard failures are returned as structured errors,
// soft conditions (unknown parameter names, optimizer hiccups) are emitted
// through a process-wide warning hook.
package errors

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("gstools-warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler. Use it to
// silence or redirect non-fatal conditions such as AttributeWarning.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs the zerolog warning sink (injected from the
// logging package to avoid a circular import).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a non-fatal warning. When a zerolog sink is installed it wins;
// otherwise the plain handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// AttributeWarning is emitted when a caller passes an optional parameter
// name a model family does not declare. Construction proceeds with the
// recognized names; the stray one is reported here instead of failing.
type AttributeWarning struct {
	Component string
	Name      string
	Reason    string
}

func (w *AttributeWarning) Error() string {
	return fmt.Sprintf("%s: ignoring unknown attribute '%s': %s", w.Component, w.Name, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *AttributeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("component", w.Component).
		Str("attribute", w.Name).
		Str("reason", w.Reason).
		Str("type", "AttributeWarning")
}

// NewAttributeWarning creates a new AttributeWarning.
func NewAttributeWarning(component, name, reason string) *AttributeWarning {
	return &AttributeWarning{Component: component, Name: name, Reason: reason}
}

// ConvergenceWarning is emitted when an iterative routine stops before
// reaching its tolerance (normalizer fitting, sampler adaptation).
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConfigurationError reports an invalid or inconsistent setup: a model
// family without a primitive, a spatial dimension outside the supported
// range, a generator update with nothing to update from, and the like.
type ConfigurationError struct {
	Component string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gstools: %s: %s", e.Component, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("component", e.Component).
		Str("reason", e.Reason).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a new ConfigurationError with a stack trace.
func NewConfigurationError(component, reason string) error {
	err := &ConfigurationError{Component: component, Reason: reason}
	return errors.WithStack(err)
}

// NewConfigurationErrorf creates a new ConfigurationError with a formatted
// reason and a stack trace.
func NewConfigurationErrorf(component, format string, args ...interface{}) error {
	err := &ConfigurationError{Component: component, Reason: fmt.Sprintf(format, args...)}
	return errors.WithStack(err)
}

// BoundsError reports a parameter value outside its declared bounds, or a
// malformed bounds specification itself. Bounds carries the formatted
// interval (for example "[0.2, 30] cc") and Reason the side and strictness
// of the violation. A NaN Value marks a malformed specification rather than
// a value violation.
type BoundsError struct {
	Param  string
	Value  float64
	Bounds string
	Reason string
}

func (e *BoundsError) Error() string {
	if math.IsNaN(e.Value) {
		if e.Param == "" {
			return fmt.Sprintf("gstools: invalid bounds %s: %s", e.Bounds, e.Reason)
		}
		return fmt.Sprintf("gstools: invalid bounds %s for parameter '%s': %s", e.Bounds, e.Param, e.Reason)
	}
	return fmt.Sprintf("gstools: parameter '%s' = %v out of bounds %s: %s", e.Param, e.Value, e.Bounds, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *BoundsError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Float64("value", e.Value).
		Str("bounds", e.Bounds).
		Str("reason", e.Reason).
		Str("type", "BoundsError")
}

// NewBoundsError creates a new BoundsError with a stack trace.
func NewBoundsError(param string, value float64, bounds, reason string) error {
	err := &BoundsError{Param: param, Value: value, Bounds: bounds, Reason: reason}
	return errors.WithStack(err)
}

// DimensionError reports an input whose shape does not match expectations.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("gstools: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation,
// such as a percentile outside (0, 1) or non-monotone bin edges.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gstools: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Numerical failure
//
// ===========================================================================

// NumericalError reports a numerical routine that failed or produced
// unusable values: quadrature or root bracketing that did not converge, an
// integral scale that could not be matched, NaN or Inf in intermediate
// results. Values holds the offending numbers, Iteration the refinement
// level or step count at failure (0 when not applicable).
type NumericalError struct {
	Op        string
	Reason    string
	Values    []float64
	Iteration int
}

func (e *NumericalError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	if valStr == "" {
		return fmt.Sprintf("gstools: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("gstools: %s: %s. Values: [%s]", e.Op, e.Reason, valStr)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NumericalError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Floats64("values", e.Values).
		Int("iteration", e.Iteration).
		Str("type", "NumericalError")
}

// NewNumericalError creates a new NumericalError with a stack trace.
func NewNumericalError(op, reason string, values []float64, iteration int) error {
	err := &NumericalError{Op: op, Reason: reason, Values: values, Iteration: iteration}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")
)
