// Package log defines standard attribute keys for geostatistical operations.
//
// Using these keys keeps log output consistent across the library and makes
// filtering by model, generator, or sampling concern straightforward. The
// keys follow a hierarchical naming convention ("model.family",
// "field.modes") for structured log analysis.

package log

// Model context
// These attributes identify the covariance model an operation acts on.
const (
	// FamilyKey identifies the covariance model family.
	// Examples: "Gaussian", "Exponential", "Matern", "TPLStable"
	FamilyKey = "model.family"

	// DimKey records the spatial dimension of the model (1, 2 or 3).
	DimKey = "model.dim"

	// VarianceKey records the model variance (sill minus nugget).
	VarianceKey = "model.var"

	// LenScaleKey records the main length scale of the model.
	LenScaleKey = "model.len_scale"

	// NuggetKey records the nugget (sub-scale variance) of the model.
	NuggetKey = "model.nugget"

	// OperationKey specifies the operation being performed.
	// Standard values: "update", "generate", "sample", "fit", "estimate"
	OperationKey = "geo.operation"

	// ComponentKey identifies which package performs the operation.
	// Examples: "covmodel", "field.randmeth", "normalize"
	ComponentKey = "geo.component"
)

// Field generator context
// These attributes describe spectral generator state.
const (
	// GeneratorKey identifies the generator variant.
	// Examples: "RandMeth", "IncomprRandMeth", "IncomprRandZeroVelMeth"
	GeneratorKey = "field.generator"

	// ModeCountKey records the number of Fourier modes of a generator.
	ModeCountKey = "field.modes"

	// ValueTypeKey records whether a generator produces scalar or vector
	// fields.
	ValueTypeKey = "field.value_type"

	// SeedKey records the RNG seed for reproducibility.
	SeedKey = "rng.seed"

	// SamplingKey records the radial sampling strategy in use.
	// Values: "auto", "inversion", "mcmc"
	SamplingKey = "rng.sampling"
)

// Data shape
// These attributes describe the data an operation processes.
const (
	// PointsKey records the number of evaluation points.
	PointsKey = "data.points"

	// BinsKey records the number of distance bins in variogram estimation.
	BinsKey = "data.bins"

	// PairsKey records the number of point pairs scanned.
	PairsKey = "data.pairs"
)

// Performance
// Timing and iteration counters.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the iteration count of an iterative routine.
	IterationKey = "perf.iteration"

	// EvaluationsKey records function evaluation counts in quadrature or
	// optimization.
	EvaluationsKey = "perf.evaluations"
)

// Error and warning context
const (
	// ErrorCodeKey provides a structured error code for programmatic
	// handling. Examples: "BOUNDS_VIOLATION", "NUMERICAL_FAILURE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the error type.
	// Examples: "BoundsError", "ConfigurationError"
	ErrorTypeKey = "error.type"

	// SuggestionKey provides hints for resolving issues.
	// Examples: "loosen the argument bounds", "increase mode count"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
const (
	OperationUpdate   = "update"
	OperationGenerate = "generate"
	OperationSample   = "sample"
	OperationFit      = "fit"
	OperationEstimate = "estimate"

	// Standard error codes
	ErrorBounds            = "BOUNDS_VIOLATION"
	ErrorConfiguration     = "INVALID_CONFIGURATION"
	ErrorNumerical         = "NUMERICAL_FAILURE"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
)
