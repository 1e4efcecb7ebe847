// Package funcs implements the executable library (spec §4.4 / C4):
// math, comparison, logical, series, sampler, CSV, and domain
// functions, each a registry.Executable. File layout follows the
// spec's own subsection breakdown (one file per §4.4.x).
package funcs

import (
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

// broadcast applies op to a and b under spec §4.4.1's broadcasting
// rules: scalar-scalar, scalar-vector, vector-scalar, and
// elementwise vector-vector (requiring equal length). It is the one
// helper every variadic math op folds through, modeled directly on
// emu/simd.go's per-arrangement dispatch loop — there the "lane count"
// is fixed by the SIMD arrangement, here it is the vector's length.
func broadcast(a, b value.Value, op func(x, y float64) (float64, error)) (value.Value, error) {
	switch {
	case a.Kind() == value.KindScalar && b.Kind() == value.KindScalar:
		av, _ := a.AsScalar()
		bv, _ := b.AsScalar()
		r, err := op(av, bv)
		if err != nil {
			return value.Value{}, err
		}
		return value.Scalar(r), nil

	case a.Kind() == value.KindScalar && b.Kind() == value.KindVector:
		av, _ := a.AsScalar()
		bv, _ := b.AsVector()
		out := make([]float64, len(bv))
		for i, y := range bv {
			r, err := op(av, y)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = r
		}
		return value.VectorOf(out), nil

	case a.Kind() == value.KindVector && b.Kind() == value.KindScalar:
		av, _ := a.AsVector()
		bv, _ := b.AsScalar()
		out := make([]float64, len(av))
		for i, x := range av {
			r, err := op(x, bv)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = r
		}
		return value.VectorOf(out), nil

	case a.Kind() == value.KindVector && b.Kind() == value.KindVector:
		av, _ := a.AsVector()
		bv, _ := b.AsVector()
		if len(av) != len(bv) {
			return value.Value{}, errkind.New(errkind.VectorSizeMismatch,
				"vector operands have lengths %d and %d", len(av), len(bv))
		}
		out := make([]float64, len(av))
		for i := range av {
			r, err := op(av[i], bv[i])
			if err != nil {
				return value.Value{}, err
			}
			out[i] = r
		}
		return value.VectorOf(out), nil

	default:
		return value.Value{}, errkind.New(errkind.MismatchedArgumentType,
			"arithmetic requires scalar or vector operands, got %s and %s", a.Kind(), b.Kind())
	}
}

// foldVariadic left-folds op across args (spec §4.4.1): a single
// argument is returned unchanged, two or more are combined
// left-to-right via broadcast.
func foldVariadic(args []value.Value, op func(x, y float64) (float64, error)) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, errkind.New(errkind.IncorrectArgumentCount,
			"expected at least 1 argument, got 0")
	}
	acc := args[0]
	for _, next := range args[1:] {
		var err error
		acc, err = broadcast(acc, next, op)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}
