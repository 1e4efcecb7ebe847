package funcs

import (
	"math"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterSeries installs the ten time-series/vector operations of
// spec §4.4.3.
func RegisterSeries(r *registry.Registry) {
	r.Register("grow_series", func() registry.Executable { return growSeriesOp{} })
	r.Register("compound_series", func() registry.Executable { return compoundSeriesOp{} })
	r.Register("npv", func() registry.Executable { return npvOp{} })
	r.Register("sum_series", func() registry.Executable { return sumSeriesOp{} })
	r.Register("get_element", func() registry.Executable { return getElementOp{} })
	r.Register("delete_element", func() registry.Executable { return deleteElementOp{} })
	r.Register("series_delta", func() registry.Executable { return seriesDeltaOp{} })
	r.Register("compose_vector", func() registry.Executable { return composeVectorOp{} })
	r.Register("interpolate_series", func() registry.Executable { return interpolateSeriesOp{} })
	r.Register("capitalize_expense", func() registry.Executable { return capitalizeExpenseOp{} })
}

// normalizeIndex applies spec's negative-index-from-end policy and
// fails EmptyVectorOperation / IndexOutOfBounds as specified by
// get_element / delete_element.
func normalizeIndex(length int, i int) (int, error) {
	if length == 0 {
		return 0, errkind.New(errkind.EmptyVectorOperation, "operation on empty vector")
	}
	if i < 0 {
		i = length + i
	}
	if i < 0 || i >= length {
		return 0, errkind.New(errkind.IndexOutOfBounds, "index %d out of range [0,%d)", i, length)
	}
	return i, nil
}

type growSeriesOp struct{}

func (growSeriesOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 3 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 3 arguments, got %d", len(args))
	}
	base, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	rate, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	n, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	count := int(n)
	if count <= 0 {
		return []value.Value{value.VectorOf(nil)}, nil
	}
	out := make([]float64, count)
	growth := 1 + rate
	acc := base
	for i := 0; i < count; i++ {
		acc *= growth
		out[i] = acc
	}
	return []value.Value{value.VectorOf(out)}, nil
}

type compoundSeriesOp struct{}

func (compoundSeriesOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 2 arguments, got %d", len(args))
	}
	base, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	rates, err := args[1].AsVector()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rates))
	acc := base
	for i, rate := range rates {
		acc *= 1 + rate
		out[i] = acc
	}
	return []value.Value{value.VectorOf(out)}, nil
}

// npvOp implements the index-based, discount-factor-multiplied npv
// resolved in DESIGN.md's Open Question decision:
// Σ cashflowsᵢ / (1+rate)^(i+1).
type npvOp struct{}

func (npvOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 2 arguments, got %d", len(args))
	}
	rate, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	cashflows, err := args[1].AsVector()
	if err != nil {
		return nil, err
	}
	if rate == -1 {
		return nil, errkind.New(errkind.InvalidSamplerParameters, "npv rate of -1 is undefined")
	}
	sum := 0.0
	discount := 1 + rate
	for i, cf := range cashflows {
		sum += cf / math.Pow(discount, float64(i+1))
	}
	return []value.Value{value.Scalar(sum)}, nil
}

type sumSeriesOp struct{}

func (sumSeriesOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 1 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 1 argument, got %d", len(args))
	}
	v, err := args[0].AsVector()
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return []value.Value{value.Scalar(sum)}, nil
}

type getElementOp struct{}

func (getElementOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 2 arguments, got %d", len(args))
	}
	v, err := args[0].AsVector()
	if err != nil {
		return nil, err
	}
	idx, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	i, err := normalizeIndex(len(v), int(idx))
	if err != nil {
		return nil, err
	}
	return []value.Value{value.Scalar(v[i])}, nil
}

type deleteElementOp struct{}

func (deleteElementOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 2 arguments, got %d", len(args))
	}
	v, err := args[0].AsVector()
	if err != nil {
		return nil, err
	}
	idx, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	i, err := normalizeIndex(len(v), int(idx))
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(v)-1)
	out = append(out, v[:i]...)
	out = append(out, v[i+1:]...)
	return []value.Value{value.VectorOf(out)}, nil
}

// seriesDeltaOp returns length-(n-1) first differences, the Open
// Question resolved per DESIGN.md in favor of the shorter-vector
// reading over the "leading 0" reading.
type seriesDeltaOp struct{}

func (seriesDeltaOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 1 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 1 argument, got %d", len(args))
	}
	v, err := args[0].AsVector()
	if err != nil {
		return nil, err
	}
	if len(v) < 2 {
		return []value.Value{value.VectorOf(nil)}, nil
	}
	out := make([]float64, len(v)-1)
	for i := 0; i < len(v)-1; i++ {
		out[i] = v[i+1] - v[i]
	}
	return []value.Value{value.VectorOf(out)}, nil
}

type composeVectorOp struct{}

func (composeVectorOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		switch a.Kind() {
		case value.KindScalar:
			s, _ := a.AsScalar()
			out = append(out, s)
		case value.KindVector:
			v, _ := a.AsVector()
			out = append(out, v...)
		default:
			return nil, errkind.New(errkind.MismatchedArgumentType,
				"compose_vector accepts only scalars and vectors, got %s", a.Kind())
		}
	}
	return []value.Value{value.VectorOf(out)}, nil
}

// interpolateSeriesOp resolves the Open Question per DESIGN.md / spec
// §9: n<1 -> empty, n=1 -> [b], n>=2 -> linear interpolation.
type interpolateSeriesOp struct{}

func (interpolateSeriesOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 3 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 3 arguments, got %d", len(args))
	}
	a, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	b, err := args[1].AsScalar()
	if err != nil {
		return nil, err
	}
	nv, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	n := int(nv)
	if n < 1 {
		return []value.Value{value.VectorOf(nil)}, nil
	}
	if n == 1 {
		return []value.Value{value.VectorOf([]float64{b})}, nil
	}
	step := (b - a) / float64(n-1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a + step*float64(i)
	}
	return []value.Value{value.VectorOf(out)}, nil
}

// capitalizeExpenseOp is a multi-return executable (spec §4.4.3): it
// capitalizes a stream of past expenses over an amortization period
// and returns (research_asset, amortization).
type capitalizeExpenseOp struct{}

func (capitalizeExpenseOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 3 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 3 arguments, got %d", len(args))
	}
	current, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	past, err := args[1].AsVector()
	if err != nil {
		return nil, err
	}
	periodV, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	period := periodV
	if period <= 0 {
		return nil, errkind.New(errkind.InvalidSamplerParameters, "capitalize_expense period must be > 0, got %g", period)
	}

	researchAsset := current
	amortization := 0.0
	for i, p := range past {
		age := float64(i + 1)
		if age < period {
			researchAsset += p * (period - age) / period
		}
		if age <= period {
			amortization += p / period
		}
	}
	return []value.Value{value.Scalar(researchAsset), value.Scalar(amortization)}, nil
}
