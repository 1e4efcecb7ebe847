package funcs

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterSamplers installs the distribution samplers of spec §4.4.4.
// Every sampler reads env.Rand — the calling goroutine's own
// *rand.Rand (spec §9 RNG ownership) — rather than holding a generator
// of its own (see registry.Env's doc comment).
func RegisterSamplers(r *registry.Registry) {
	r.Register("Normal", func() registry.Executable { return normalOp{} })
	r.Register("Lognormal", func() registry.Executable { return lognormalOp{} })
	r.Register("Uniform", func() registry.Executable { return uniformOp{} })
	r.Register("Bernoulli", func() registry.Executable { return bernoulliOp{} })
	r.Register("Beta", func() registry.Executable { return betaOp{} })
	r.Register("Pert", func() registry.Executable { return pertOp{} })
	r.Register("Triangular", func() registry.Executable { return triangularOp{} })
}

func scalarArgs(args []value.Value, n int) ([]float64, error) {
	if len(args) != n {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected %d arguments, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		s, err := a.AsScalar()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

type normalOp struct{}

func (normalOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 2)
	if err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: p[0], Sigma: p[1], Src: env.Rand}
	return []value.Value{value.Scalar(dist.Rand())}, nil
}

type lognormalOp struct{}

func (lognormalOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 2)
	if err != nil {
		return nil, err
	}
	dist := distuv.LogNormal{Mu: p[0], Sigma: p[1], Src: env.Rand}
	return []value.Value{value.Scalar(dist.Rand())}, nil
}

type uniformOp struct{}

func (uniformOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 2)
	if err != nil {
		return nil, err
	}
	dist := distuv.Uniform{Min: p[0], Max: p[1], Src: env.Rand}
	return []value.Value{value.Scalar(dist.Rand())}, nil
}

type bernoulliOp struct{}

func (bernoulliOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 1)
	if err != nil {
		return nil, err
	}
	dist := distuv.Bernoulli{P: p[0], Src: env.Rand}
	return []value.Value{value.Scalar(dist.Rand())}, nil
}

// sampleGamma draws from Gamma(shape, 1) — the per-sample building
// block spec §4.4.4 specifies for Beta.
func sampleGamma(shape float64, env *registry.Env) float64 {
	if shape == 0 {
		return 0
	}
	dist := distuv.Gamma{Alpha: shape, Beta: 1, Src: env.Rand}
	return dist.Rand()
}

// betaSample implements spec §4.4.4's Beta(α, β) as the ratio of two
// independent Gamma(α,1)/Gamma(β,1) draws, with both zero mapping to 0.
func betaSample(alpha, beta float64, env *registry.Env) (float64, error) {
	if alpha <= 0 || beta <= 0 {
		return 0, errkind.New(errkind.InvalidSamplerParameters,
			"Beta requires alpha > 0 and beta > 0, got %g and %g", alpha, beta)
	}
	g1 := sampleGamma(alpha, env)
	g2 := sampleGamma(beta, env)
	if g1 == 0 && g2 == 0 {
		return 0, nil
	}
	return g1 / (g1 + g2), nil
}

type betaOp struct{}

func (betaOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 2)
	if err != nil {
		return nil, err
	}
	sample, err := betaSample(p[0], p[1], env)
	if err != nil {
		return nil, err
	}
	return []value.Value{value.Scalar(sample)}, nil
}

// pertOp implements the modified-PERT distribution of spec §4.4.4:
// a Beta(α, β) with γ=4 shape parameters derived from (min, mode, max),
// rescaled onto [min, max].
type pertOp struct{}

func (pertOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 3)
	if err != nil {
		return nil, err
	}
	min, mode, max := p[0], p[1], p[2]
	if !(min <= mode && mode <= max) || min == max {
		return nil, errkind.New(errkind.InvalidSamplerParameters,
			"Pert requires min <= mode <= max and min != max, got min=%g mode=%g max=%g", min, mode, max)
	}
	const gamma = 4.0
	alpha := 1 + gamma*(mode-min)/(max-min)
	beta := 1 + gamma*(max-mode)/(max-min)
	sample, err := betaSample(alpha, beta, env)
	if err != nil {
		return nil, err
	}
	return []value.Value{value.Scalar(min + sample*(max-min))}, nil
}

// triangularOp implements spec §4.4.4's Triangular(min, mode, max) via
// inverse CDF sampling of U(0,1); gonum's distuv package has no
// triangular distribution, so this is a direct, from-the-spec
// implementation rather than a library call (see DESIGN.md).
type triangularOp struct{}

func (triangularOp) Execute(env *registry.Env, args []value.Value) ([]value.Value, error) {
	p, err := scalarArgs(args, 3)
	if err != nil {
		return nil, err
	}
	min, mode, max := p[0], p[1], p[2]
	if !(min <= mode && mode <= max) || min == max {
		return nil, errkind.New(errkind.InvalidSamplerParameters,
			"Triangular requires min <= mode <= max and min != max, got min=%g mode=%g max=%g", min, mode, max)
	}
	u := env.Rand.Float64()
	fc := (mode - min) / (max - min)
	var sample float64
	if u < fc {
		sample = min + math.Sqrt(u*(max-min)*(mode-min))
	} else {
		sample = max - math.Sqrt((1-u)*(max-min)*(max-mode))
	}
	return []value.Value{value.Scalar(sample)}, nil
}
