package covmodel

import (
	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// Family enumerates the built-in covariance model families.
type Family int

const (
	// Gaussian has correlation exp(-pi/4 * (r/l)^2).
	Gaussian Family = iota
	// Exponential has correlation exp(-r/l).
	Exponential
	// Matern has a smoothness parameter nu interpolating between
	// Exponential (nu=0.5) and Gaussian (nu -> inf) behavior.
	Matern
	// Stable has correlation exp(-(r/l)^alpha) with shape alpha in (0, 2].
	Stable
	// Rational has correlation (1 + (r/l)^2/alpha)^-alpha.
	Rational
	// Spherical has compact support: 1 - 3/2 h + 1/2 h^3 for h < 1.
	Spherical
	// Linear has compact support: 1 - h for h < 1.
	Linear
	// TPLGaussian is a truncated power law superposing Gaussian modes.
	TPLGaussian
	// TPLExponential is a truncated power law superposing exponential modes.
	TPLExponential
	// TPLStable is a truncated power law superposing stable modes.
	TPLStable

	familyCount = iota
)

// String returns the family name.
func (f Family) String() string {
	if s, err := f.spec(); err == nil {
		return s.name
	}
	return "Unknown"
}

// primitive marks which single function a family supplies; the other
// representations are derived from it.
type primitive int

const (
	primitiveNone primitive = iota
	// primitiveCor is a non-dimensional correlation cor(h), h = r/len.
	primitiveCor
	// primitiveCorrelation is a correlation over absolute distance r.
	primitiveCorrelation
	// primitiveCovariance is a covariance over absolute distance r.
	primitiveCovariance
	// primitiveVariogram is a variogram over absolute distance r.
	primitiveVariogram
)

// optArg declares one named optional parameter of a family: its position
// defines the argument order, def the default value.
type optArg struct {
	name   string
	def    float64
	bounds Bounds
}

// familySpec is the static description of one model family. Exactly one of
// the four primitive functions must be set, matching the primitive marker.
// All other fields are optional hooks; nil selects the generic fallback
// (unit variance factor, rescale 1, quadrature integral scale, transform
// engine spectral density, no radial cdf/ppf).
type familySpec struct {
	name      string
	primitive primitive

	cor         func(m *CovModel, h float64) float64
	correlation func(m *CovModel, r float64) float64
	covariance  func(m *CovModel, r float64) float64
	variogram   func(m *CovModel, r float64) float64

	optArgs []optArg

	defaultRescale  func() float64
	varFactor       func(m *CovModel) float64
	integralScale   func(m *CovModel) float64
	spectralDensity func(m *CovModel, k float64) float64
	radialCDF       func(m *CovModel, r float64) float64
	radialPPF       func(m *CovModel, u float64) float64
	hasCDF          func(m *CovModel) bool
	hasPPF          func(m *CovModel) bool

	// checkOptArgs emits advisory warnings for legal but numerically
	// delicate parameter combinations. Run once at construction.
	checkOptArgs func(m *CovModel)
}

// spec resolves the family description, failing for values outside the
// enumeration or for a spec that does not supply exactly one primitive.
func (f Family) spec() (*familySpec, error) {
	var s *familySpec
	switch f {
	case Gaussian:
		s = &gaussianSpec
	case Exponential:
		s = &exponentialSpec
	case Matern:
		s = &maternSpec
	case Stable:
		s = &stableSpec
	case Rational:
		s = &rationalSpec
	case Spherical:
		s = &sphericalSpec
	case Linear:
		s = &linearSpec
	case TPLGaussian:
		s = &tplGaussianSpec
	case TPLExponential:
		s = &tplExponentialSpec
	case TPLStable:
		s = &tplStableSpec
	default:
		return nil, gserrors.NewConfigurationErrorf(
			"covmodel", "unknown model family %d", int(f))
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *familySpec) validate() error {
	set := 0
	if s.cor != nil {
		set++
	}
	if s.correlation != nil {
		set++
	}
	if s.covariance != nil {
		set++
	}
	if s.variogram != nil {
		set++
	}
	if set != 1 || s.primitive == primitiveNone {
		return gserrors.NewConfigurationErrorf(
			"covmodel", "family %s must supply exactly one primitive "+
				"(cor, correlation, covariance or variogram)", s.name)
	}
	for _, opt := range s.optArgs {
		if isFixedArgName(opt.name) {
			return gserrors.NewConfigurationErrorf(
				"covmodel", "family %s: optional parameter %q collides "+
					"with a fixed parameter name", s.name, opt.name)
		}
		if err := opt.bounds.Validate(); err != nil {
			return gserrors.Wrapf(err, "family %s: parameter %q", s.name, opt.name)
		}
	}
	return nil
}

// isFixedArgName reports whether the name belongs to a fixed model
// parameter and therefore may not be reused for an optional one.
func isFixedArgName(name string) bool {
	switch name {
	case "var", "var_raw", "len_scale", "nugget", "anis", "angles",
		"dim", "rescale", "integral_scale":
		return true
	}
	return false
}
