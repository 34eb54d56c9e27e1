// Package field implements the randomization method: Monte Carlo spectral
// synthesis of Gaussian random fields for a given covariance model. Modes
// are sampled from the model's radial spectral density, and fields are
// evaluated as weighted cosine/sine sums over those modes.
package field

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/joshua-benabou/gstools-go/covmodel"
	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	gslog "github.com/joshua-benabou/gstools-go/pkg/log"
	"github.com/joshua-benabou/gstools-go/random"
)

// Sampling selects how the spectral radii of the modes are drawn.
type Sampling string

const (
	// SamplingAuto inverts the radial spectral distribution whenever the
	// model provides a ppf or a cdf and falls back to the random walk
	// sampler otherwise.
	SamplingAuto Sampling = "auto"
	// SamplingInversion forces inversion sampling. Models without a ppf
	// or cdf fail at reseed time.
	SamplingInversion Sampling = "inversion"
	// SamplingMCMC forces the log density random walk sampler.
	SamplingMCMC Sampling = "mcmc"
)

// DefaultModeNo is the number of Fourier modes used when the configuration
// leaves ModeNo at zero.
const DefaultModeNo = 1000

// KeepSeed passed to Update or ResetSeed leaves the current seed in place.
// Any negative seed behaves the same.
const KeepSeed int64 = -1

// Generator is the common surface of the randomization method variants.
type Generator interface {
	// Update rebinds the generator to a model and/or a new seed. A nil
	// model keeps the current one, a negative seed keeps the current
	// seed. The sampled modes are recomputed atomically whenever model
	// or seed effectively change.
	Update(model *covmodel.CovModel, seed int64) error
	// Generate evaluates the field at the query positions (one column
	// per point). Scalar generators return a single row, vector
	// generators one row per component.
	Generate(pos mat.Matrix, addNugget bool) (*mat.Dense, error)
	// Nugget draws nugget noise of the given shape, or exact zeros
	// without consuming the random stream when the model has no nugget.
	Nugget(rows, cols int) *mat.Dense
	// Seed of the random stream behind the current modes.
	Seed() int64
	// ModeNo is the number of summed Fourier modes.
	ModeNo() int
	// Model returns the generator's private model copy. Treat it as
	// read only and rebind through Update to change the model.
	Model() *covmodel.CovModel
	// ValueType is "scalar" or "vector".
	ValueType() string

	fmt.Stringer
}

// Config controls a randomization method generator.
type Config struct {
	// ModeNo is the number of Fourier modes. Zero selects DefaultModeNo.
	ModeNo int
	// Seed of the random stream. Must not be negative.
	Seed int64
	// Sampling strategy for the spectral radii. Empty selects SamplingAuto.
	Sampling Sampling
}

// RandMeth synthesizes scalar random fields with the randomization method
// of Hesse et al.: the field is a sum over mode_no cosine/sine pairs with
// standard normal amplitudes and wavevectors drawn from the radial
// spectral density of the bound covariance model.
//
// The generator owns a deep copy of its model, so mutating the caller's
// model after binding never affects the sampled modes.
type RandMeth struct {
	name      string
	valueType string

	model    *covmodel.CovModel
	modeNo   int
	seed     int64
	sampling Sampling

	rng       *random.RNG
	covSample *mat.Dense
	z1        []float64
	z2        []float64

	// afterReseed lets the vector variants draw their extra coefficient
	// matrices from the same stream whenever the modes are recomputed.
	afterReseed func()
}

// NewRandMeth creates a scalar field generator bound to model.
func NewRandMeth(model *covmodel.CovModel, cfg Config) (*RandMeth, error) {
	g := &RandMeth{}
	if err := initRandMeth(g, "RandMeth", "scalar", model, cfg); err != nil {
		return nil, err
	}
	return g, nil
}

func initRandMeth(g *RandMeth, name, valueType string, model *covmodel.CovModel, cfg Config) error {
	if model == nil {
		return gserrors.NewConfigurationError("field."+name, "no model given")
	}
	modeNo := cfg.ModeNo
	if modeNo == 0 {
		modeNo = DefaultModeNo
	}
	if modeNo < 0 {
		return gserrors.NewConfigurationErrorf("field."+name,
			"mode_no must be positive, got %d", cfg.ModeNo)
	}
	sampling := cfg.Sampling
	if sampling == "" {
		sampling = SamplingAuto
	}
	if err := checkSampling(name, sampling); err != nil {
		return err
	}
	if cfg.Seed < 0 {
		return gserrors.NewConfigurationErrorf("field."+name,
			"seed must not be negative, got %d", cfg.Seed)
	}
	g.name = name
	g.valueType = valueType
	g.modeNo = modeNo
	g.sampling = sampling
	return g.Update(model, cfg.Seed)
}

func checkSampling(name string, s Sampling) error {
	switch s {
	case SamplingAuto, SamplingInversion, SamplingMCMC:
		return nil
	}
	return gserrors.NewConfigurationErrorf("field."+name,
		"unknown sampling strategy %q", string(s))
}

func (g *RandMeth) label() string {
	if g.name == "" {
		return "RandMeth"
	}
	return g.name
}

// Update rebinds model and/or seed. A nil model keeps the current model, a
// negative seed keeps the current seed. Modes are recomputed only when
// something effectively changes; calling with neither a model nor a seed
// on an unbound generator is a configuration error.
func (g *RandMeth) Update(model *covmodel.CovModel, seed int64) error {
	if model != nil {
		if !model.Equal(g.model) {
			g.model = model.Copy()
			if seed < 0 {
				seed = g.seed
			}
			return g.resetSeed(seed)
		}
		if seed >= 0 {
			return g.SetSeed(seed)
		}
		return nil
	}
	if seed >= 0 {
		if g.model == nil {
			return gserrors.NewConfigurationError("field."+g.label(), "no model bound")
		}
		return g.SetSeed(seed)
	}
	if g.model != nil && g.z1 != nil && g.z2 != nil && g.covSample != nil {
		return nil
	}
	return gserrors.NewConfigurationError("field."+g.label(), "neither model nor seed given")
}

// SetSeed recomputes the modes when seed differs from the current one.
func (g *RandMeth) SetSeed(seed int64) error {
	if seed < 0 {
		return gserrors.NewConfigurationErrorf("field."+g.label(),
			"seed must not be negative, got %d", seed)
	}
	if seed == g.seed && g.covSample != nil {
		return nil
	}
	return g.resetSeed(seed)
}

// ResetSeed recomputes the modes even when the seed is unchanged. KeepSeed
// recomputes with the current seed.
func (g *RandMeth) ResetSeed(seed int64) error {
	if seed < 0 {
		seed = g.seed
	}
	return g.resetSeed(seed)
}

// SetModeNo changes the number of Fourier modes and recomputes the modes
// when the number differs from the current one.
func (g *RandMeth) SetModeNo(modeNo int) error {
	if modeNo <= 0 {
		return gserrors.NewConfigurationErrorf("field."+g.label(),
			"mode_no must be positive, got %d", modeNo)
	}
	if modeNo == g.modeNo {
		return nil
	}
	g.modeNo = modeNo
	return g.resetSeed(g.seed)
}

// SetSampling changes the radius sampling strategy. It takes effect on the
// next recomputation of the modes.
func (g *RandMeth) SetSampling(s Sampling) error {
	if err := checkSampling(g.label(), s); err != nil {
		return err
	}
	g.sampling = s
	return nil
}

// resetSeed rebuilds the sampled modes from a fresh stream. The
// replacement state is computed in full before any field is assigned, so a
// sampling failure leaves the previous modes intact.
func (g *RandMeth) resetSeed(seed int64) error {
	if g.model == nil {
		return gserrors.NewConfigurationError("field."+g.label(), "no model bound")
	}
	start := time.Now()
	rng := random.New(uint64(seed))

	z1 := rng.Normal(g.modeNo)
	z2 := rng.Normal(g.modeNo)
	dim := g.model.Dim()
	sphere := rng.Sphere(dim, g.modeNo)
	rad, err := g.sampleRadii(rng)
	if err != nil {
		return gserrors.Wrapf(err, "field.%s: sampling spectral radii", g.label())
	}

	covSample := mat.NewDense(dim, g.modeNo, nil)
	for i := 0; i < g.modeNo; i++ {
		for d := 0; d < dim; d++ {
			covSample.Set(d, i, rad[i]*sphere.At(d, i))
		}
	}

	g.seed = seed
	g.rng = rng
	g.z1 = z1
	g.z2 = z2
	g.covSample = covSample
	if g.afterReseed != nil {
		g.afterReseed()
	}

	gslog.GetLoggerWithName("field").Debug("modes recomputed",
		gslog.GeneratorKey, g.label(),
		gslog.SeedKey, seed,
		gslog.ModeCountKey, g.modeNo,
		gslog.SamplingKey, string(g.sampling),
		gslog.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (g *RandMeth) sampleRadii(rng *random.RNG) ([]float64, error) {
	if g.sampling == SamplingInversion ||
		(g.sampling == SamplingAuto && (g.model.HasPPF() || g.model.HasCDF())) {
		_, cdf, ppf := g.model.DistFuncs()
		return rng.SampleDist(cdf, ppf, g.modeNo, 0)
	}
	return rng.SampleLnPDF(g.model.LnSpectralRadPDF, g.modeNo, 1/g.model.LenRescaled()), nil
}

func (g *RandMeth) ready() error {
	if g.model == nil || g.covSample == nil {
		return gserrors.NewConfigurationError("field."+g.label(),
			"generator is not bound to a model")
	}
	return nil
}

func (g *RandMeth) checkPosDim(pos mat.Matrix) (cols int, err error) {
	dim, n := pos.Dims()
	if dim != g.model.Dim() {
		return 0, gserrors.NewDimensionError("field."+g.label()+".Generate",
			g.model.Dim(), dim, 0)
	}
	return n, nil
}

// Generate evaluates the scalar field at the query positions (dim x n, one
// column per point) and returns a 1 x n matrix. When addNugget is set and
// the model carries a nugget, independent nugget noise is drawn on every
// call.
func (g *RandMeth) Generate(pos mat.Matrix, addNugget bool) (out *mat.Dense, err error) {
	defer gserrors.Recover(&err, "field."+g.label()+".Generate")
	if err := g.ready(); err != nil {
		return nil, err
	}
	n, err := g.checkPosDim(pos)
	if err != nil {
		return nil, err
	}
	summed := summate(g.covSample, g.z1, g.z2, pos)
	floats.Scale(math.Sqrt(g.model.Var()/float64(g.modeNo)), summed)
	if err := gserrors.CheckNumericalStability("field."+g.label()+".Generate", summed, 0); err != nil {
		return nil, err
	}
	out = mat.NewDense(1, n, summed)
	if addNugget {
		out.Add(out, g.Nugget(1, n))
	}
	return out, nil
}

// Nugget draws normal nugget noise of the given shape, scaled by the
// square root of the model's nugget. A zero nugget returns exact zeros
// without consuming the random stream, keeping repeated nugget-free calls
// deterministic.
func (g *RandMeth) Nugget(rows, cols int) *mat.Dense {
	if g.model == nil || g.model.Nugget() <= 0 {
		return mat.NewDense(rows, cols, nil)
	}
	noise := g.rng.NormalMat(rows, cols)
	noise.Scale(math.Sqrt(g.model.Nugget()), noise)
	return noise
}

// Seed of the random stream behind the current modes.
func (g *RandMeth) Seed() int64 { return g.seed }

// ModeNo is the number of summed Fourier modes.
func (g *RandMeth) ModeNo() int { return g.modeNo }

// Model returns the generator's private model copy.
func (g *RandMeth) Model() *covmodel.CovModel { return g.model }

// Sampling is the configured radius sampling strategy.
func (g *RandMeth) Sampling() Sampling { return g.sampling }

// ValueType reports "scalar" or "vector".
func (g *RandMeth) ValueType() string { return g.valueType }

// modes exposes the sampled state for the package tests.
func (g *RandMeth) modes() (covSample *mat.Dense, z1, z2 []float64) {
	return g.covSample, g.z1, g.z2
}

func (g *RandMeth) String() string {
	return fmt.Sprintf("%s(model=%v, mode_no=%d, seed=%d)", g.label(), g.model, g.modeNo, g.seed)
}

// VectorConfig controls the incompressible vector field generators.
type VectorConfig struct {
	Config

	// MeanVelocity scales the synthesized field. Zero selects 1.
	MeanVelocity float64
	// VecDim is the number of vector components when it differs from the
	// model dimension. Zero selects the model dimension. Only 2 and 3
	// component fields can be generated.
	VecDim int
}

func resolveVectorConfig(name string, model *covmodel.CovModel, cfg VectorConfig) (meanVelocity float64, vecDim int, err error) {
	if model == nil {
		return 0, 0, gserrors.NewConfigurationError("field."+name, "no model given")
	}
	vecDim = cfg.VecDim
	if vecDim == 0 {
		vecDim = model.Dim()
	}
	if vecDim < 2 || vecDim > 3 {
		return 0, 0, gserrors.NewConfigurationErrorf("field."+name,
			"only 2D and 3D vector fields can be generated, got vector dimension %d", vecDim)
	}
	meanVelocity = cfg.MeanVelocity
	if meanVelocity == 0 {
		meanVelocity = 1
	}
	return meanVelocity, vecDim, nil
}

// IncomprRandMeth synthesizes incompressible (divergence free) random
// vector fields after Kraichnan: every mode contribution is multiplied by
// the projector p_c(k) = delta_{c1} - k_c*k_1/|k|^2, which removes the
// component parallel to the wavevector. The output is scaled by the mean
// velocity.
type IncomprRandMeth struct {
	RandMeth

	meanVelocity float64
	vecDim       int
}

// NewIncomprRandMeth creates an incompressible vector field generator. The
// vector dimension, explicit or taken from the model, must be 2 or 3; the
// check runs before any mode sampling.
func NewIncomprRandMeth(model *covmodel.CovModel, cfg VectorConfig) (*IncomprRandMeth, error) {
	meanVelocity, vecDim, err := resolveVectorConfig("IncomprRandMeth", model, cfg)
	if err != nil {
		return nil, err
	}
	g := &IncomprRandMeth{meanVelocity: meanVelocity, vecDim: vecDim}
	if err := initRandMeth(&g.RandMeth, "IncomprRandMeth", "vector", model, cfg.Config); err != nil {
		return nil, err
	}
	return g, nil
}

// MeanVelocity scales the synthesized field.
func (g *IncomprRandMeth) MeanVelocity() float64 { return g.meanVelocity }

// VecDim is the number of vector components.
func (g *IncomprRandMeth) VecDim() int { return g.vecDim }

// Generate evaluates the vector field at the query positions (dim x n) and
// returns a vecDim x n matrix.
func (g *IncomprRandMeth) Generate(pos mat.Matrix, addNugget bool) (out *mat.Dense, err error) {
	defer gserrors.Recover(&err, "field."+g.label()+".Generate")
	if err := g.ready(); err != nil {
		return nil, err
	}
	n, err := g.checkPosDim(pos)
	if err != nil {
		return nil, err
	}
	out = summateIncompr(g.vecDim, g.covSample, g.z1, g.z2, pos)
	out.Scale(g.meanVelocity*math.Sqrt(g.model.Var()/float64(g.modeNo)), out)
	if err := gserrors.CheckNumericalStability("field."+g.label()+".Generate", out.RawMatrix().Data, 0); err != nil {
		return nil, err
	}
	if addNugget {
		out.Add(out, g.Nugget(g.vecDim, n))
	}
	return out, nil
}

// ZeroVelConfig controls the zero mean velocity variant.
type ZeroVelConfig struct {
	VectorConfig

	// PeriodicBC snaps the sampled wavevectors onto the reciprocal
	// lattice of a periodic box before each summation. Requires BoxLen.
	PeriodicBC bool
	// BoxLen holds the box edge lengths, one per vector component.
	BoxLen []float64
}

// IncomprRandZeroVelMeth synthesizes incompressible vector fields with
// zero mean velocity. Instead of the analytic projector it uses
// Kraichnan's cross-product construction: per-mode normal vectors are
// crossed with the unit wavevector, so every contribution is orthogonal to
// its wavevector by construction.
//
// With PeriodicBC the wavevector components are rounded onto the
// reciprocal lattice 2*pi/BoxLen for the summation. The radii and
// directions remain samples of the continuous spectral density, so the
// mode weights are not rederived for the lattice measure; the statistical
// bias this introduces is not corrected.
type IncomprRandZeroVelMeth struct {
	RandMeth

	meanVelocity float64
	vecDim       int
	periodicBC   bool
	boxLen       []float64

	// z1v, z2v hold one standard normal vector per mode (modeNo x vecDim)
	// and are redrawn together with the base modes on every reseed.
	z1v *mat.Dense
	z2v *mat.Dense
}

// NewIncomprRandZeroVelMeth creates a zero mean velocity incompressible
// vector field generator.
func NewIncomprRandZeroVelMeth(model *covmodel.CovModel, cfg ZeroVelConfig) (*IncomprRandZeroVelMeth, error) {
	meanVelocity, vecDim, err := resolveVectorConfig("IncomprRandZeroVelMeth", model, cfg.VectorConfig)
	if err != nil {
		return nil, err
	}
	if cfg.PeriodicBC {
		if len(cfg.BoxLen) != vecDim {
			return nil, gserrors.NewConfigurationErrorf("field.IncomprRandZeroVelMeth",
				"periodic boundary conditions need one box length per vector component, got %d for vector dimension %d",
				len(cfg.BoxLen), vecDim)
		}
		for _, l := range cfg.BoxLen {
			if l <= 0 {
				return nil, gserrors.NewConfigurationErrorf("field.IncomprRandZeroVelMeth",
					"box lengths must be positive, got %v", cfg.BoxLen)
			}
		}
	}
	g := &IncomprRandZeroVelMeth{
		meanVelocity: meanVelocity,
		vecDim:       vecDim,
		periodicBC:   cfg.PeriodicBC,
		boxLen:       append([]float64(nil), cfg.BoxLen...),
	}
	g.afterReseed = func() {
		g.z1v = g.rng.NormalMat(g.modeNo, g.vecDim)
		g.z2v = g.rng.NormalMat(g.modeNo, g.vecDim)
	}
	if err := initRandMeth(&g.RandMeth, "IncomprRandZeroVelMeth", "vector", model, cfg.Config); err != nil {
		return nil, err
	}
	return g, nil
}

// MeanVelocity scales the synthesized field.
func (g *IncomprRandZeroVelMeth) MeanVelocity() float64 { return g.meanVelocity }

// VecDim is the number of vector components.
func (g *IncomprRandZeroVelMeth) VecDim() int { return g.vecDim }

// PeriodicBC reports whether wavevectors are snapped onto the reciprocal
// lattice of the box.
func (g *IncomprRandZeroVelMeth) PeriodicBC() bool { return g.periodicBC }

// BoxLen returns the box edge lengths used for periodic snapping.
func (g *IncomprRandZeroVelMeth) BoxLen() []float64 {
	return append([]float64(nil), g.boxLen...)
}

// Generate evaluates the vector field at the query positions (dim x n) and
// returns a vecDim x n matrix. Under periodic boundary conditions the
// wavevectors are snapped on a per-call copy; the sampled modes are never
// mutated.
func (g *IncomprRandZeroVelMeth) Generate(pos mat.Matrix, addNugget bool) (out *mat.Dense, err error) {
	defer gserrors.Recover(&err, "field."+g.label()+".Generate")
	if err := g.ready(); err != nil {
		return nil, err
	}
	n, err := g.checkPosDim(pos)
	if err != nil {
		return nil, err
	}
	cov := g.covSample
	if g.periodicBC {
		cov = snapToLattice(g.covSample, g.boxLen)
	}
	out = summateIncomprZeroVel(g.vecDim, cov, g.z1v, g.z2v, pos)
	out.Scale(g.meanVelocity*math.Sqrt(g.model.Var()/float64(g.modeNo)), out)
	if err := gserrors.CheckNumericalStability("field."+g.label()+".Generate", out.RawMatrix().Data, 0); err != nil {
		return nil, err
	}
	if addNugget {
		out.Add(out, g.Nugget(g.vecDim, n))
	}
	return out, nil
}

// snapToLattice rounds the wavevector components onto the reciprocal
// lattice 2*pi/boxLen of a periodic box, one box length per row. The
// result is a copy; the continuous sample stays untouched.
func snapToLattice(covSample *mat.Dense, boxLen []float64) *mat.Dense {
	snapped := mat.DenseCopyOf(covSample)
	dim, modeNo := covSample.Dims()
	rows := len(boxLen)
	if rows > dim {
		rows = dim
	}
	for d := 0; d < rows; d++ {
		fac := 2 * math.Pi / boxLen[d]
		for i := 0; i < modeNo; i++ {
			snapped.Set(d, i, fac*math.Round(covSample.At(d, i)/fac))
		}
	}
	return snapped
}

// GenericVectorFieldMeth synthesizes random vector fields without a
// divergence constraint: each component carries its own standard normal
// coefficients over the shared sampled wavevectors, giving independent
// scalar fields with the model's correlation structure.
type GenericVectorFieldMeth struct {
	RandMeth

	meanVelocity float64
	vecDim       int

	z1v *mat.Dense
	z2v *mat.Dense
}

// NewGenericVectorFieldMeth creates a vector field generator without the
// incompressibility constraint.
func NewGenericVectorFieldMeth(model *covmodel.CovModel, cfg VectorConfig) (*GenericVectorFieldMeth, error) {
	meanVelocity, vecDim, err := resolveVectorConfig("GenericVectorFieldMeth", model, cfg)
	if err != nil {
		return nil, err
	}
	g := &GenericVectorFieldMeth{meanVelocity: meanVelocity, vecDim: vecDim}
	g.afterReseed = func() {
		g.z1v = g.rng.NormalMat(g.modeNo, g.vecDim)
		g.z2v = g.rng.NormalMat(g.modeNo, g.vecDim)
	}
	if err := initRandMeth(&g.RandMeth, "GenericVectorFieldMeth", "vector", model, cfg.Config); err != nil {
		return nil, err
	}
	return g, nil
}

// MeanVelocity scales the synthesized field.
func (g *GenericVectorFieldMeth) MeanVelocity() float64 { return g.meanVelocity }

// VecDim is the number of vector components.
func (g *GenericVectorFieldMeth) VecDim() int { return g.vecDim }

// Generate evaluates the vector field at the query positions (dim x n) and
// returns a vecDim x n matrix.
func (g *GenericVectorFieldMeth) Generate(pos mat.Matrix, addNugget bool) (out *mat.Dense, err error) {
	defer gserrors.Recover(&err, "field."+g.label()+".Generate")
	if err := g.ready(); err != nil {
		return nil, err
	}
	n, err := g.checkPosDim(pos)
	if err != nil {
		return nil, err
	}
	out = summateGenericVector(g.vecDim, g.covSample, g.z1v, g.z2v, pos)
	out.Scale(g.meanVelocity*math.Sqrt(g.model.Var()/float64(g.modeNo)), out)
	if err := gserrors.CheckNumericalStability("field."+g.label()+".Generate", out.RawMatrix().Data, 0); err != nil {
		return nil, err
	}
	if addNugget {
		out.Add(out, g.Nugget(g.vecDim, n))
	}
	return out, nil
}
