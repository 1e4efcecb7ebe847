package funcs

import (
	"math"
	"strings"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterDomain installs the two domain functions of spec §4.4.6:
// Black-Scholes option pricing and the SIR epidemiological model.
func RegisterDomain(r *registry.Registry) {
	r.Register("BlackScholes", func() registry.Executable { return blackScholesOp{} })
	r.Register("SirModel", func() registry.Executable { return sirModelOp{} })
}

// cndf is the standard normal CDF, computed via erfc the same way the
// teacher computes its own closed-form functions directly against
// math package primitives (e.g. emu/simd.go's float math) rather than
// hand-rolling a polynomial approximation.
func cndf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

type blackScholesOp struct{}

func (blackScholesOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 6 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 6 arguments, got %d", len(args))
	}
	s, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	k, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	rate, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	t, err := args[3].AsScalar()
	if err != nil {
		return nil, err
	}
	v, err := args[4].AsScalar()
	if err != nil {
		return nil, err
	}
	optType, err := args[5].AsString()
	if err != nil {
		return nil, err
	}

	if s <= 0 || k <= 0 || t <= 0 || v <= 0 {
		return nil, errkind.New(errkind.InvalidSamplerParameters,
			"BlackScholes requires S, K, T, and v to be > 0")
	}

	d1 := (math.Log(s/k) + (rate+0.5*v*v)*t) / (v * math.Sqrt(t))
	d2 := d1 - v*math.Sqrt(t)

	switch strings.ToLower(optType) {
	case "call":
		price := s*cndf(d1) - k*math.Exp(-rate*t)*cndf(d2)
		return []value.Value{value.Scalar(price)}, nil
	case "put":
		price := k*math.Exp(-rate*t)*cndf(-d2) - s*cndf(-d1)
		return []value.Value{value.Scalar(price)}, nil
	default:
		return nil, errkind.New(errkind.InvalidSamplerParameters,
			"BlackScholes type must be 'call' or 'put', got %q", optType)
	}
}

// sirModelOp is a multi-return executable (spec §4.4.6): discrete
// Euler integration of the SIR differential equations, returning three
// vectors of length periods (susceptible, infected, recovered), each
// clamped at 0 per step.
type sirModelOp struct{}

func (sirModelOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 7 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 7 arguments, got %d", len(args))
	}
	s0, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	i0, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	r0, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	beta, err := args[3].AsScalar()
	if err != nil {
		return nil, err
	}
	gamma, err := args[4].AsScalar()
	if err != nil {
		return nil, err
	}
	periodsV, err := args[5].AsScalar()
	if err != nil {
		return nil, err
	}
	dt, err := args[6].AsScalar()
	if err != nil {
		return nil, err
	}

	periods := int(periodsV)
	if periods <= 0 {
		return []value.Value{value.VectorOf(nil), value.VectorOf(nil), value.VectorOf(nil)}, nil
	}

	n := s0 + i0 + r0
	if n == 0 {
		return nil, errkind.New(errkind.InvalidSamplerParameters,
			"total population in SirModel cannot be zero")
	}

	s, i, rec := s0, i0, r0

	sOut := make([]float64, periods)
	iOut := make([]float64, periods)
	rOut := make([]float64, periods)

	sOut[0], iOut[0], rOut[0] = s, i, rec

	for step := 1; step < periods; step++ {
		dS := -beta * s * i / n * dt
		dI := (beta*s*i/n - gamma*i) * dt
		dR := gamma * i * dt

		s = clampNonNegative(s + dS)
		i = clampNonNegative(i + dI)
		rec = clampNonNegative(rec + dR)

		sOut[step] = s
		iOut[step] = i
		rOut[step] = rec
	}

	return []value.Value{value.VectorOf(sOut), value.VectorOf(iOut), value.VectorOf(rOut)}, nil
}

func clampNonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
