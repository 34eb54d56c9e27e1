// Package covmodel provides covariance models for geostatistical analysis
// and spectral random field synthesis.
//
// A CovModel couples a model family (Gaussian, Exponential, Matern, ...)
// with its spatial parameters: dimension, variance, length scale,
// anisotropy ratios, rotation angles, nugget and family specific optional
// parameters. From the single primitive function a family supplies, the
// model derives correlation, covariance and variogram, the spectral
// density via a symmetric Fourier (Hankel) transform, the radial spectral
// distribution used for wavevector sampling, and integral and percentile
// scales. Setters validate against per-parameter bounds and leave the
// model unchanged on error.
//
// Models are not safe for concurrent mutation. Consumers that need an
// isolated view (such as field generators) should work on a Copy.
package covmodel

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/joshua-benabou/gstools-go/hankel"
	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// Config collects the constructor parameters of a CovModel. The zero value
// selects the documented defaults, so only deviations need to be set.
type Config struct {
	// Dim is the spatial dimension, 1 to 3. Zero selects 3.
	Dim int
	// Var is the variance of the model (sill minus nugget). Zero selects 1.
	// For families with a variance factor this is the effective variance;
	// the raw variance is derived as Var / varFactor.
	Var float64
	// VarRaw sets the raw variance directly, bypassing the variance
	// factor. Nonzero VarRaw takes precedence over Var.
	VarRaw float64
	// LenScale is the main length scale. Zero selects 1.
	LenScale float64
	// Nugget is the sub-scale variance added to the variogram at r > 0.
	Nugget float64
	// Anis are the transversal anisotropy ratios. Shorter slices are
	// filled up with leading 1.0 entries, longer ones truncated to dim-1.
	Anis []float64
	// Angles are the rotation angles in radians. Shorter slices are
	// padded with zeros, longer ones truncated to dim*(dim-1)/2. Values
	// are normalized into [0, 2pi).
	Angles []float64
	// IntegralScale, when nonzero, back-solves LenScale so the model
	// attains this integral scale. LenScale must be left zero then.
	IntegralScale float64
	// Rescale divides the length scale wherever the family shape uses it.
	// Zero selects the family default (1 unless documented otherwise).
	Rescale float64
	// OptArgs overrides family specific optional parameters by name.
	// Unknown names emit an AttributeWarning and are ignored.
	OptArgs map[string]float64
	// Transform configures the spectral transform engine. Nil selects
	// hankel.DefaultParams().
	Transform *hankel.Params
}

// CovModel is a parameterized covariance model. Construct it with New;
// the zero value is not usable.
type CovModel struct {
	family Family
	spec   *familySpec

	dim      int
	varRaw   float64
	lenScale float64
	nugget   float64
	rescale  float64
	anis     []float64
	angles   []float64

	optArgs  []float64
	optIndex map[string]int

	bounds map[string]Bounds

	transform hankel.Params
	sft       *hankel.SymmetricFourierTransform

	integralScale      float64
	integralScaleValid bool
}

// New constructs a model of the given family. All parameters are checked
// against their bounds; the variance is resolved last since families with
// a variance factor need the remaining parameters in place first.
func New(family Family, cfg Config) (*CovModel, error) {
	spec, err := family.spec()
	if err != nil {
		return nil, err
	}

	dim := cfg.Dim
	if dim == 0 {
		dim = 3
	}
	if dim < 1 || dim > 3 {
		return nil, gserrors.NewValueError("CovModel",
			fmt.Sprintf("only dimensions 1 <= d <= 3 are supported, got %d", dim))
	}

	params := hankel.DefaultParams()
	if cfg.Transform != nil {
		params = *cfg.Transform
	}
	sft, err := hankel.New(dim, params)
	if err != nil {
		return nil, err
	}

	m := &CovModel{
		family:    family,
		spec:      spec,
		dim:       dim,
		transform: params,
		sft:       sft,
	}

	// optional parameters: declared defaults first, user values on top
	m.optArgs = make([]float64, len(spec.optArgs))
	m.optIndex = make(map[string]int, len(spec.optArgs))
	for i, o := range spec.optArgs {
		m.optArgs[i] = o.def
		m.optIndex[o.name] = i
	}
	for name, v := range cfg.OptArgs {
		i, ok := m.optIndex[name]
		if !ok {
			gserrors.Warn(gserrors.NewAttributeWarning(
				spec.name, name, "not an optional parameter of this model"))
			continue
		}
		m.optArgs[i] = v
	}

	m.bounds = map[string]Bounds{
		"var":       {Min: 0, Max: math.Inf(1), Type: BoundOpenOpen},
		"len_scale": {Min: 0, Max: math.Inf(1), Type: BoundOpenOpen},
		"nugget":    {Min: 0, Max: math.Inf(1), Type: BoundClosedOpen},
	}
	for _, o := range spec.optArgs {
		m.bounds[o.name] = o.bounds
	}

	switch {
	case cfg.Rescale != 0:
		m.rescale = math.Abs(cfg.Rescale)
	case spec.defaultRescale != nil:
		m.rescale = spec.defaultRescale()
	default:
		m.rescale = 1
	}

	m.nugget = cfg.Nugget
	m.angles = normalizeAngles(dim, cfg.Angles)

	m.lenScale = cfg.LenScale
	if m.lenScale == 0 {
		m.lenScale = 1
	}
	anis, err := normalizeAnis(dim, cfg.Anis)
	if err != nil {
		return nil, err
	}
	m.anis = anis

	setVar := func() {
		if cfg.VarRaw != 0 {
			m.varRaw = cfg.VarRaw
			return
		}
		v := cfg.Var
		if v == 0 {
			v = 1
		}
		m.varRaw = v / m.varFactor()
	}
	setVar()

	if cfg.IntegralScale != 0 {
		if err := m.SetIntegralScale(cfg.IntegralScale); err != nil {
			return nil, err
		}
		// the length scale changed, so re-derive the raw variance to
		// keep the requested effective variance
		setVar()
	}

	if err := m.CheckParamBounds(); err != nil {
		return nil, err
	}
	if spec.checkOptArgs != nil {
		spec.checkOptArgs(m)
	}
	return m, nil
}

// Copy returns an independent model with the same parameters. The
// transform engine is shared since it is immutable after construction.
func (m *CovModel) Copy() *CovModel {
	c := *m
	c.anis = append([]float64(nil), m.anis...)
	c.angles = append([]float64(nil), m.angles...)
	c.optArgs = append([]float64(nil), m.optArgs...)
	c.bounds = make(map[string]Bounds, len(m.bounds))
	for k, v := range m.bounds {
		c.bounds[k] = v
	}
	return &c
}

// opt returns the value of a declared optional parameter. Family
// implementations only query names from their own declaration, so a miss
// is a programming error.
func (m *CovModel) opt(name string) float64 {
	i, ok := m.optIndex[name]
	if !ok {
		panic("covmodel: " + m.spec.name + " has no optional parameter " + name)
	}
	return m.optArgs[i]
}

func (m *CovModel) varFactor() float64 {
	if m.spec.varFactor != nil {
		return m.spec.varFactor(m)
	}
	return 1
}

func (m *CovModel) invalidateScale() {
	m.integralScaleValid = false
}

// accessors

// Family returns the model family.
func (m *CovModel) Family() Family { return m.family }

// Name returns the family name.
func (m *CovModel) Name() string { return m.spec.name }

// Dim returns the spatial dimension.
func (m *CovModel) Dim() int { return m.dim }

// Var returns the effective variance var_raw * varFactor.
func (m *CovModel) Var() float64 { return m.varRaw * m.varFactor() }

// VarRaw returns the raw variance before the family variance factor.
func (m *CovModel) VarRaw() float64 { return m.varRaw }

// Nugget returns the nugget.
func (m *CovModel) Nugget() float64 { return m.nugget }

// Sill returns the sill of the variogram: variance plus nugget.
func (m *CovModel) Sill() float64 { return m.Var() + m.nugget }

// LenScale returns the main length scale.
func (m *CovModel) LenScale() float64 { return m.lenScale }

// Rescale returns the rescale factor.
func (m *CovModel) Rescale() float64 { return m.rescale }

// LenRescaled returns len_scale / rescale.
func (m *CovModel) LenRescaled() float64 { return m.lenScale / m.rescale }

// Anis returns a copy of the dim-1 transversal anisotropy ratios.
func (m *CovModel) Anis() []float64 {
	return append([]float64(nil), m.anis...)
}

// Angles returns a copy of the dim*(dim-1)/2 rotation angles.
func (m *CovModel) Angles() []float64 {
	return append([]float64(nil), m.angles...)
}

// OptArgNames returns the declared optional parameter names in order.
func (m *CovModel) OptArgNames() []string {
	names := make([]string, len(m.spec.optArgs))
	for i, o := range m.spec.optArgs {
		names[i] = o.name
	}
	return names
}

// TransformParams returns the resolved spectral transform configuration.
func (m *CovModel) TransformParams() hankel.Params { return m.transform }

// IsIsotropic reports whether all anisotropy ratios are 1.
func (m *CovModel) IsIsotropic() bool {
	for _, a := range m.anis {
		if !isclose(a, 1) {
			return false
		}
	}
	return true
}

// DoRotation reports whether any rotation angle is nonzero.
func (m *CovModel) DoRotation() bool {
	for _, a := range m.angles {
		if !isclose(a, 0) {
			return true
		}
	}
	return false
}

// LenScaleVec returns the length scales along the main axes:
// len_scale in the first direction, len_scale * anis[i-1] transversally.
func (m *CovModel) LenScaleVec() []float64 {
	res := make([]float64, m.dim)
	res[0] = m.lenScale
	for i := 1; i < m.dim; i++ {
		res[i] = m.lenScale * m.anis[i-1]
	}
	return res
}

// IntegralScaleVec returns the integral scales along the main axes,
// scaled by the anisotropy ratios like LenScaleVec.
func (m *CovModel) IntegralScaleVec() ([]float64, error) {
	is, err := m.CalcIntegralScale()
	if err != nil {
		return nil, err
	}
	res := make([]float64, m.dim)
	res[0] = is
	for i := 1; i < m.dim; i++ {
		res[i] = is * m.anis[i-1]
	}
	return res, nil
}

// parameter access by name

// Param returns a scalar parameter by name: "var", "var_raw", "len_scale",
// "nugget" or one of the family's optional parameters.
func (m *CovModel) Param(name string) (float64, error) {
	switch name {
	case "var":
		return m.Var(), nil
	case "var_raw":
		return m.varRaw, nil
	case "len_scale":
		return m.lenScale, nil
	case "nugget":
		return m.nugget, nil
	}
	if i, ok := m.optIndex[name]; ok {
		return m.optArgs[i], nil
	}
	return 0, gserrors.NewValueError("CovModel.Param",
		fmt.Sprintf("%s has no parameter %q", m.spec.name, name))
}

// SetParam sets a scalar parameter by name, with the same bounds checking
// as the dedicated setters.
func (m *CovModel) SetParam(name string, v float64) error {
	switch name {
	case "var":
		return m.SetVar(v)
	case "var_raw":
		return m.SetVarRaw(v)
	case "len_scale":
		return m.SetLenScale(v)
	case "nugget":
		return m.SetNugget(v)
	}
	i, ok := m.optIndex[name]
	if !ok {
		return gserrors.NewValueError("CovModel.SetParam",
			fmt.Sprintf("%s has no parameter %q", m.spec.name, name))
	}
	old := m.optArgs[i]
	m.optArgs[i] = v
	if err := m.CheckParamBounds(); err != nil {
		m.optArgs[i] = old
		return err
	}
	m.invalidateScale()
	return nil
}

// setters

// SetDim changes the spatial dimension, rebuilding the transform engine
// and re-normalizing the anisotropy ratios and rotation angles.
func (m *CovModel) SetDim(dim int) error {
	if dim < 1 || dim > 3 {
		return gserrors.NewValueError("CovModel.SetDim",
			fmt.Sprintf("only dimensions 1 <= d <= 3 are supported, got %d", dim))
	}
	sft, err := hankel.New(dim, m.transform)
	if err != nil {
		return err
	}
	anis, err := normalizeAnis(dim, m.anis)
	if err != nil {
		return err
	}
	angles := normalizeAngles(dim, m.angles)

	oldDim, oldSft, oldAnis, oldAngles := m.dim, m.sft, m.anis, m.angles
	m.dim, m.sft, m.anis, m.angles = dim, sft, anis, angles
	if err := m.CheckParamBounds(); err != nil {
		m.dim, m.sft, m.anis, m.angles = oldDim, oldSft, oldAnis, oldAngles
		return err
	}
	m.invalidateScale()
	return nil
}

// SetVar sets the effective variance; the raw variance is derived through
// the family variance factor.
func (m *CovModel) SetVar(v float64) error {
	old := m.varRaw
	m.varRaw = v / m.varFactor()
	if err := m.CheckParamBounds(); err != nil {
		m.varRaw = old
		return err
	}
	m.invalidateScale()
	return nil
}

// SetVarRaw sets the raw variance directly. The effective variance bounds
// still apply.
func (m *CovModel) SetVarRaw(v float64) error {
	old := m.varRaw
	m.varRaw = v
	if err := m.CheckParamBounds(); err != nil {
		m.varRaw = old
		return err
	}
	m.invalidateScale()
	return nil
}

// SetNugget sets the nugget.
func (m *CovModel) SetNugget(nugget float64) error {
	old := m.nugget
	m.nugget = nugget
	if err := m.CheckParamBounds(); err != nil {
		m.nugget = old
		return err
	}
	m.invalidateScale()
	return nil
}

// SetLenScale sets the main length scale.
func (m *CovModel) SetLenScale(l float64) error {
	old := m.lenScale
	m.lenScale = l
	if err := m.CheckParamBounds(); err != nil {
		m.lenScale = old
		return err
	}
	m.invalidateScale()
	return nil
}

// SetAnis replaces the anisotropy ratios, applying the same fill and
// truncation rules as construction.
func (m *CovModel) SetAnis(anis []float64) error {
	na, err := normalizeAnis(m.dim, anis)
	if err != nil {
		return err
	}
	old := m.anis
	m.anis = na
	if err := m.CheckParamBounds(); err != nil {
		m.anis = old
		return err
	}
	m.invalidateScale()
	return nil
}

// SetAngles replaces the rotation angles, normalized into [0, 2pi).
func (m *CovModel) SetAngles(angles []float64) error {
	old := m.angles
	m.angles = normalizeAngles(m.dim, angles)
	if err := m.CheckParamBounds(); err != nil {
		m.angles = old
		return err
	}
	m.invalidateScale()
	return nil
}

// bounds handling

// ArgBounds returns the bounds of a parameter by name.
func (m *CovModel) ArgBounds(name string) (Bounds, bool) {
	b, ok := m.bounds[name]
	return b, ok
}

// SetArgBounds replaces bounds for the named parameters. All entries are
// validated before any is applied. Current values falling outside their
// new bounds are snapped to the bounds' default value; the variance is
// handled last since its variance factor may depend on the other
// parameters.
func (m *CovModel) SetArgBounds(bounds map[string]Bounds) error {
	for name, b := range bounds {
		if err := b.Validate(); err != nil {
			return gserrors.Wrapf(err, "set bounds for %q", name)
		}
		if _, ok := m.bounds[name]; !ok {
			return gserrors.NewValueError("CovModel.SetArgBounds",
				fmt.Sprintf("%s has no bounded parameter %q", m.spec.name, name))
		}
	}
	apply := func(name string, current float64) error {
		b, ok := bounds[name]
		if !ok {
			return nil
		}
		m.bounds[name] = b
		if !b.Contains(current) {
			return m.SetParam(name, b.DefaultValue())
		}
		return nil
	}
	if err := apply("len_scale", m.lenScale); err != nil {
		return err
	}
	if err := apply("nugget", m.nugget); err != nil {
		return err
	}
	for i, o := range m.spec.optArgs {
		if err := apply(o.name, m.optArgs[i]); err != nil {
			return err
		}
	}
	if err := apply("var", m.Var()); err != nil {
		return err
	}
	m.invalidateScale()
	return nil
}

// CheckParamBounds verifies every bounded parameter against its bounds.
// The variance is checked in its effective form.
func (m *CovModel) CheckParamBounds() error {
	if err := m.bounds["var"].check("var", m.Var()); err != nil {
		return err
	}
	if err := m.bounds["len_scale"].check("len_scale", m.lenScale); err != nil {
		return err
	}
	if err := m.bounds["nugget"].check("nugget", m.nugget); err != nil {
		return err
	}
	for i, o := range m.spec.optArgs {
		if err := m.bounds[o.name].check(o.name, m.optArgs[i]); err != nil {
			return err
		}
	}
	return nil
}

// variogram, covariance and correlation, derived from the family primitive

// Cor is the non-dimensional correlation at h = r / LenRescaled().
func (m *CovModel) Cor(h float64) float64 {
	if m.spec.cor != nil {
		return m.spec.cor(m, h)
	}
	return m.Correlation(math.Abs(h) * m.LenRescaled())
}

// Correlation is the correlation function over absolute distance.
func (m *CovModel) Correlation(r float64) float64 {
	switch {
	case m.spec.correlation != nil:
		return m.spec.correlation(m, r)
	case m.spec.cor != nil:
		return m.spec.cor(m, math.Abs(r)/m.LenRescaled())
	case m.spec.covariance != nil:
		return m.spec.covariance(m, r) / m.Var()
	default:
		return 1 - (m.spec.variogram(m, r)-m.nugget)/m.Var()
	}
}

// Covariance is the covariance function var * correlation.
func (m *CovModel) Covariance(r float64) float64 {
	switch {
	case m.spec.covariance != nil:
		return m.spec.covariance(m, r)
	case m.spec.variogram != nil:
		return m.Var() - m.spec.variogram(m, r) + m.nugget
	default:
		return m.Var() * m.Correlation(r)
	}
}

// Variogram is the isotropic variogram var * (1 - correlation) + nugget.
func (m *CovModel) Variogram(r float64) float64 {
	if m.spec.variogram != nil {
		return m.spec.variogram(m, r)
	}
	return m.Var() - m.Covariance(r) + m.nugget
}

// CorNugget is the correlation respecting the nugget discontinuity:
// exactly 1 at r close to 0.
func (m *CovModel) CorNugget(r float64) float64 {
	if isclose(math.Abs(r), 0) {
		return 1
	}
	return m.Correlation(r)
}

// CovNugget is the covariance respecting the nugget discontinuity: the
// sill at r close to 0.
func (m *CovModel) CovNugget(r float64) float64 {
	if isclose(math.Abs(r), 0) {
		return m.Sill()
	}
	return m.Covariance(r)
}

// VarioNugget is the variogram respecting the nugget discontinuity:
// exactly 0 at r close to 0.
func (m *CovModel) VarioNugget(r float64) float64 {
	if isclose(math.Abs(r), 0) {
		return 0
	}
	return m.Variogram(r)
}

// axis evaluations: axis 0 is the main direction, transversal axes divide
// the distance by their anisotropy ratio

// CorAxis is the correlation along a main axis of anisotropy.
func (m *CovModel) CorAxis(r float64, axis int) float64 {
	if axis == 0 {
		return m.Correlation(r)
	}
	return m.Correlation(math.Abs(r) / m.anis[axis-1])
}

// CovAxis is the covariance along a main axis of anisotropy.
func (m *CovModel) CovAxis(r float64, axis int) float64 {
	if axis == 0 {
		return m.Covariance(r)
	}
	return m.Covariance(math.Abs(r) / m.anis[axis-1])
}

// VarioAxis is the variogram along a main axis of anisotropy.
func (m *CovModel) VarioAxis(r float64, axis int) float64 {
	if axis == 0 {
		return m.Variogram(r)
	}
	return m.Variogram(math.Abs(r) / m.anis[axis-1])
}

// spatial evaluations on position matrices (dim rows, one column per point)

// CorSpatial evaluates the correlation at spatial positions, respecting
// anisotropy and rotation.
func (m *CovModel) CorSpatial(pos mat.Matrix) ([]float64, error) {
	rad, err := m.isoRadii(pos)
	if err != nil {
		return nil, err
	}
	for i, r := range rad {
		rad[i] = m.Correlation(r)
	}
	return rad, nil
}

// CovSpatial evaluates the covariance at spatial positions, respecting
// anisotropy and rotation.
func (m *CovModel) CovSpatial(pos mat.Matrix) ([]float64, error) {
	rad, err := m.isoRadii(pos)
	if err != nil {
		return nil, err
	}
	for i, r := range rad {
		rad[i] = m.Covariance(r)
	}
	return rad, nil
}

// VarioSpatial evaluates the variogram at spatial positions, respecting
// anisotropy and rotation.
func (m *CovModel) VarioSpatial(pos mat.Matrix) ([]float64, error) {
	rad, err := m.isoRadii(pos)
	if err != nil {
		return nil, err
	}
	for i, r := range rad {
		rad[i] = m.Variogram(r)
	}
	return rad, nil
}

func (m *CovModel) isoRadii(pos mat.Matrix) ([]float64, error) {
	iso, err := m.Isometrize(pos)
	if err != nil {
		return nil, err
	}
	_, n := iso.Dims()
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = mat.Norm(iso.ColView(j), 2)
	}
	return out, nil
}

// geometric transforms

// Isometrize maps positions into the isotropic coordinate system by
// derotating and contracting the transversal directions.
func (m *CovModel) Isometrize(pos mat.Matrix) (iso *mat.Dense, err error) {
	defer gserrors.Recover(&err, "CovModel.Isometrize")
	rows, cols := pos.Dims()
	if rows != m.dim {
		return nil, gserrors.NewDimensionError("CovModel.Isometrize", m.dim, rows, 0)
	}
	iso = mat.NewDense(m.dim, cols, nil)
	iso.Mul(isometrizeMatrix(m.dim, m.angles, m.anis), pos)
	return iso, nil
}

// Anisometrize maps positions from the isotropic system back into the
// anisotropic one by stretching and rotating.
func (m *CovModel) Anisometrize(pos mat.Matrix) (aniso *mat.Dense, err error) {
	defer gserrors.Recover(&err, "CovModel.Anisometrize")
	rows, cols := pos.Dims()
	if rows != m.dim {
		return nil, gserrors.NewDimensionError("CovModel.Anisometrize", m.dim, rows, 0)
	}
	aniso = mat.NewDense(m.dim, cols, nil)
	aniso.Mul(anisometrizeMatrix(m.dim, m.angles, m.anis), pos)
	return aniso, nil
}

// MainAxes returns the axes of the rotated coordinate system, one per row.
func (m *CovModel) MainAxes() *mat.Dense {
	rot := rotationMatrix(m.dim, m.angles)
	axes := mat.NewDense(m.dim, m.dim, nil)
	axes.Copy(rot.T())
	return axes
}

// comparison and formatting

// Equal reports whether two models describe the same covariance structure:
// same family and dimension, and all parameters equal within tolerance.
func (m *CovModel) Equal(other *CovModel) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.family != other.family || m.dim != other.dim {
		return false
	}
	return isclose(m.Var(), other.Var()) &&
		isclose(m.varRaw, other.varRaw) &&
		isclose(m.nugget, other.nugget) &&
		isclose(m.lenScale, other.lenScale) &&
		slicesClose(m.anis, other.anis) &&
		slicesClose(m.angles, other.angles) &&
		slicesClose(m.optArgs, other.optArgs)
}

// String returns a stable one-line representation of the model.
func (m *CovModel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(dim=%d, var=%.3g, len_scale=%.3g, nugget=%.3g, anis=%s, angles=%s",
		m.spec.name, m.dim, m.Var(), m.lenScale, m.nugget,
		formatFloats(m.anis), formatFloats(m.angles))
	for i, o := range m.spec.optArgs {
		fmt.Fprintf(&b, ", %s=%.3g", o.name, m.optArgs[i])
	}
	b.WriteByte(')')
	return b.String()
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.3g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// isclose is the parameter comparison tolerance used across the package.
func isclose(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, 1e-8, 1e-8)
}

func slicesClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !isclose(a[i], b[i]) {
			return false
		}
	}
	return true
}
