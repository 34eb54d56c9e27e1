package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	"github.com/joshua-benabou/gstools-go/random"
)

func TestLoglik_HandComputed(t *testing.T) {
	// LogNormal on {1, e, e^2} normalizes to {0, 1, 2}: population
	// variance 2/3, log Jacobian ln(1) + ln(1/e) + ln(1/e^2) = -3.
	data := []float64{1, math.E, math.E * math.E}
	llLog, err := Loglik(&LogNormal{}, data)
	require.NoError(t, err)
	want := -1.5*math.Log(2.0/3.0) - 3 - 1.5*(math.Log(2*math.Pi)+1)
	assert.InDelta(t, want, llLog, 1e-12)

	// Manly with lmbda zero is the identity, so on the already
	// normalized {0, 1, 2} only the normal part remains and the two
	// likelihoods differ by exactly the Jacobian.
	llID, err := Loglik(&Manly{}, []float64{0, 1, 2})
	require.NoError(t, err)
	assert.InDelta(t, llID-3, llLog, 1e-12)
}

func TestLoglik_Errors(t *testing.T) {
	var ve *gserrors.ValueError

	_, err := Loglik(&LogNormal{}, nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ve)

	_, err = Loglik(&BoxCox{Lmbda: 1}, []float64{1, -2})
	require.Error(t, err)
	assert.ErrorAs(t, err, &ve)
}

func TestFit_RecoversBoxCoxLambda(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical fit test in short mode")
	}
	// Draw a normal surrogate, push it through the inverse transform
	// with a known lambda and fit from a different starting point.
	const trueLmbda = 0.5
	rng := random.New(2203)
	surrogate := rng.Normal(800)
	for i := range surrogate {
		surrogate[i] = 2.0 + 0.8*surrogate[i]
	}
	truth := &BoxCox{Lmbda: trueLmbda}
	data, err := truth.Denormalize(surrogate)
	require.NoError(t, err)

	n := &BoxCox{Lmbda: 1}
	llStart, err := Loglik(n, data)
	require.NoError(t, err)

	params, err := Fit(n, data)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, params[0], n.Lmbda)

	// the optimum cannot be worse than the starting point or the
	// generating parameter
	llFit, err := Loglik(n, data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, llFit, llStart-1e-9)
	llTrue, err := Loglik(truth, data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, llFit, llTrue-1e-3)

	assert.InDelta(t, trueLmbda, params[0], 0.4)
}

func TestFit_RecoversYeoJohnsonLambda(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical fit test in short mode")
	}
	// For lmbda within (0, 2) the inverse transform accepts the whole
	// real line, so any surrogate sample is valid.
	const trueLmbda = 1.3
	rng := random.New(514)
	surrogate := rng.Normal(600)
	for i := range surrogate {
		surrogate[i] = 0.4 + 1.1*surrogate[i]
	}
	truth := &YeoJohnson{Lmbda: trueLmbda}
	data, err := truth.Denormalize(surrogate)
	require.NoError(t, err)

	n := &YeoJohnson{Lmbda: 0.5}
	params, err := Fit(n, data)
	require.NoError(t, err)
	require.Len(t, params, 1)

	llFit, err := Loglik(n, data)
	require.NoError(t, err)
	llTrue, err := Loglik(truth, data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, llFit, llTrue-1e-3)

	assert.InDelta(t, trueLmbda, params[0], 0.4)
}

func TestFit_NoParams(t *testing.T) {
	n := &LogNormal{}
	params, err := Fit(n, []float64{0.5, 1, 2})
	require.NoError(t, err)
	assert.Nil(t, params)
	assert.Empty(t, n.Params())
}

func TestFit_DegenerateData(t *testing.T) {
	// Constant data has zero variance under every parameter, so no
	// finite likelihood exists and the start parameters must survive.
	n := &BoxCox{Lmbda: 1}
	_, err := Fit(n, []float64{2.5, 2.5, 2.5, 2.5})
	require.Error(t, err)
	assert.Equal(t, 1.0, n.Lmbda)
}

func TestFit_EmptyData(t *testing.T) {
	var ve *gserrors.ValueError
	_, err := Fit(&BoxCox{}, nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ve)
}
