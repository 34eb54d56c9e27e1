package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewConfigurationError(t *testing.T) {
	tests := []struct {
		name      string
		component string
		reason    string
		wantMsg   string
	}{
		{
			name:      "family without primitive",
			component: "covmodel.New",
			reason:    "family declares no correlation primitive",
			wantMsg:   "gstools: covmodel.New: family declares no correlation primitive",
		},
		{
			name:      "unsupported dimension",
			component: "covmodel.SetDim",
			reason:    "dim must be in [1, 3], got 4",
			wantMsg:   "gstools: covmodel.SetDim: dim must be in [1, 3], got 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigurationError(tt.component, tt.reason)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// Stack trace must be attached.
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var cfgErr *ConfigurationError
			if !As(err, &cfgErr) {
				t.Error("Error should be castable to *ConfigurationError")
			}
		})
	}
}

func TestNewConfigurationErrorf(t *testing.T) {
	err := NewConfigurationErrorf("field.Update", "vector dim must be 2 or 3, got %d", 5)

	want := "gstools: field.Update: vector dim must be 2 or 3, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewBoundsError(t *testing.T) {
	err := NewBoundsError("nu", 0.05, "[0.2, 30] cc", "below lower bound")

	want := "gstools: parameter 'nu' = 0.05 out of bounds [0.2, 30] cc: below lower bound"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var boundsErr *BoundsError
	if !As(err, &boundsErr) {
		t.Error("Error should be castable to *BoundsError")
	}
	if boundsErr.Value != 0.05 {
		t.Errorf("Value = %v, want 0.05", boundsErr.Value)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Isometrize", 3, 2, 0)

	want := "gstools: Isometrize: dimension mismatch on axis 0 (rows). Expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		message string
		wantMsg string
	}{
		{
			name:    "percentile out of range",
			op:      "PercentileScale",
			message: "percentile must be within (0, 1), got 1.5",
			wantMsg: "gstools: PercentileScale: percentile must be within (0, 1), got 1.5",
		},
		{
			name:    "bad bin edges",
			op:      "EstimateUnstructured",
			message: "bin edges must be strictly increasing",
			wantMsg: "gstools: EstimateUnstructured: bin edges must be strictly increasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValueError(tt.op, tt.message)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
		})
	}
}

func TestNewNumericalError(t *testing.T) {
	err := NewNumericalError("CalcIntegralScale", "quadrature did not converge", []float64{1.25, 1.5}, 12)

	msg := err.Error()
	if !strings.Contains(msg, "CalcIntegralScale") || !strings.Contains(msg, "quadrature did not converge") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "1.25") {
		t.Errorf("expected values in message, got %q", msg)
	}

	var numErr *NumericalError
	if !As(err, &numErr) {
		t.Error("Error should be castable to *NumericalError")
	}
	if numErr.Iteration != 12 {
		t.Errorf("Iteration = %d, want 12", numErr.Iteration)
	}
}

func TestNumericalErrorTruncatesValues(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	err := NewNumericalError("Transform", "non-finite value", vals, 0)

	if !strings.Contains(err.Error(), "...") {
		t.Error("expected long value list to be truncated")
	}
}

func TestNewAttributeWarning(t *testing.T) {
	warn := NewAttributeWarning("Gaussian", "nugget_var", "not an optional argument of this family")

	want := "Gaussian: ignoring unknown attribute 'nugget_var': not an optional argument of this family"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var attrWarn *AttributeWarning
	if !As(warn, &attrWarn) {
		t.Error("Warning should be castable to *AttributeWarning")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("NelderMead", 1000, "loglik did not improve")

	want := "NelderMead failed to converge after 1000 iterations: loglik did not improve"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestWarnHandlerOverride(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	warn := NewAttributeWarning("Stable", "beta", "unknown name")
	Warn(warn)

	if captured == nil {
		t.Fatal("expected warning to reach the handler")
	}
	var attrWarn *AttributeWarning
	if !As(captured, &attrWarn) {
		t.Errorf("captured warning has wrong type %T", captured)
	}
}

func TestWrapAndIs(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrap(baseErr, "in EstimateUnstructured")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in EstimateUnstructured") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d points, got %d", "Generate", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Generate: expected 10 points, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := Wrap(err2, "wrapped twice")

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("sum", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("finite values should pass, got %v", err)
	}

	err := CheckNumericalStability("sum", []float64{1, math.NaN(), 3}, 2)
	if err == nil {
		t.Fatal("expected error for NaN input")
	}
	var numErr *NumericalError
	if !As(err, &numErr) {
		t.Errorf("wrong error type %T", err)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("scale", 1.5, 0); err != nil {
		t.Errorf("finite value should pass, got %v", err)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := CheckScalar("scale", bad, 3)
		if err == nil {
			t.Fatalf("expected error for %v", bad)
		}
		var numErr *NumericalError
		if !As(err, &numErr) {
			t.Errorf("wrong error type %T", err)
		}
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("SafeDivide(1, 0) = %v, want 0", got)
	}
	if got := SafeDivide(6, 2); got != 3 {
		t.Errorf("SafeDivide(6, 2) = %v, want 3", got)
	}
}

func TestClipValue(t *testing.T) {
	if got := ClipValue(-1, 0, 10); got != 0 {
		t.Errorf("ClipValue(-1, 0, 10) = %v, want 0", got)
	}
	if got := ClipValue(11, 0, 10); got != 10 {
		t.Errorf("ClipValue(11, 0, 10) = %v, want 10", got)
	}
	if got := ClipValue(5, 0, 10); got != 5 {
		t.Errorf("ClipValue(5, 0, 10) = %v, want 5", got)
	}
}
