package covmodel

import "math"

// Spectral representation of the model. The spectrum is the n-dimensional
// Fourier transform of the covariance function; families without an
// analytic form fall back to the symmetric Fourier transform engine
// applied to the correlation function.

// Spectrum evaluates the spectrum var * spectral_density at wavenumber k.
func (m *CovModel) Spectrum(k float64) float64 {
	return m.Var() * m.SpectralDensity(k)
}

// SpectralDensity evaluates the normalized spectrum at wavenumber k.
func (m *CovModel) SpectralDensity(k float64) float64 {
	k = math.Abs(k)
	if m.spec.spectralDensity != nil {
		return m.spec.spectralDensity(m, k)
	}
	return m.sft.Transform(m.Correlation, k)
}

// SpectralRadPDF evaluates the radial spectral density: the spectral
// density weighted by the surface of the dim-sphere of radius r. Numerical
// artifacts of the transform are clamped, so the result is always a finite
// non-negative value.
func (m *CovModel) SpectralRadPDF(r float64) float64 {
	r = math.Abs(r)
	if m.dim > 1 && isclose(r, 0) {
		return 0
	}
	res := radFac(m.dim, r) * math.Abs(m.SpectralDensity(r))
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0
	}
	return res
}

// LnSpectralRadPDF is the logarithm of SpectralRadPDF; zero density yields
// negative infinity.
func (m *CovModel) LnSpectralRadPDF(r float64) float64 {
	return math.Log(m.SpectralRadPDF(r))
}

// HasCDF reports whether the family defines the radial spectral cdf for
// the current dimension.
func (m *CovModel) HasCDF() bool {
	if m.spec.radialCDF == nil {
		return false
	}
	return m.spec.hasCDF == nil || m.spec.hasCDF(m)
}

// HasPPF reports whether the family defines the radial spectral ppf for
// the current dimension.
func (m *CovModel) HasPPF() bool {
	if m.spec.radialPPF == nil {
		return false
	}
	return m.spec.hasPPF == nil || m.spec.hasPPF(m)
}

// DistFuncs returns the radial spectral distribution functions of the
// model: the pdf is always available, cdf and ppf are nil when the family
// does not define them for the current dimension.
func (m *CovModel) DistFuncs() (pdf, cdf, ppf func(float64) float64) {
	pdf = m.SpectralRadPDF
	if m.HasCDF() {
		cdf = func(r float64) float64 { return m.spec.radialCDF(m, r) }
	}
	if m.HasPPF() {
		ppf = func(u float64) float64 { return m.spec.radialPPF(m, u) }
	}
	return pdf, cdf, ppf
}

// radFac is the surface element of the dim-sphere entering the radial
// spectral density.
func radFac(dim int, r float64) float64 {
	switch dim {
	case 1:
		return 2
	case 2:
		return 2 * math.Pi * r
	default:
		return 4 * math.Pi * r * r
	}
}
