package funcs

import (
	"math"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterMath installs the five variadic broadcasting ops and the
// seven unary math ops of spec §4.4.1.
func RegisterMath(r *registry.Registry) {
	r.Register("add", func() registry.Executable { return variadicOp{op: addOp} })
	r.Register("subtract", func() registry.Executable { return variadicOp{op: subOp} })
	r.Register("multiply", func() registry.Executable { return variadicOp{op: mulOp} })
	r.Register("divide", func() registry.Executable { return variadicOp{op: divOp} })
	r.Register("power", func() registry.Executable { return variadicOp{op: powOp} })

	r.Register("log", func() registry.Executable { return unaryOp{op: logOp} })
	r.Register("log10", func() registry.Executable { return unaryOp{op: log10Op} })
	r.Register("exp", func() registry.Executable { return unaryOp{op: math.Exp} })
	r.Register("sin", func() registry.Executable { return unaryOp{op: math.Sin} })
	r.Register("cos", func() registry.Executable { return unaryOp{op: math.Cos} })
	r.Register("tan", func() registry.Executable { return unaryOp{op: math.Tan} })
	r.Register("identity", func() registry.Executable { return unaryOp{op: identityOp} })
}

func addOp(x, y float64) (float64, error) { return x + y, nil }
func subOp(x, y float64) (float64, error) { return x - y, nil }
func mulOp(x, y float64) (float64, error) { return x * y, nil }

func divOp(x, y float64) (float64, error) {
	if y == 0 {
		return 0, errkind.New(errkind.DivisionByZero, "division by zero")
	}
	return x / y, nil
}

func powOp(x, y float64) (float64, error) {
	result := math.Pow(x, y)
	if math.IsNaN(result) {
		return 0, errkind.New(errkind.InvalidPowerOperation,
			"invalid power operation: %g ** %g", x, y)
	}
	return result, nil
}

// variadicOp implements add/subtract/multiply/divide/power: a single
// argument passes through unchanged, two or more left-fold through op.
type variadicOp struct {
	op func(x, y float64) (float64, error)
}

func (v variadicOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	result, err := foldVariadic(args, v.op)
	if err != nil {
		return nil, err
	}
	return []value.Value{result}, nil
}

func logOp(x float64) (float64, error) {
	if x <= 0 {
		return 0, errkind.New(errkind.LogOfNonPositive, "log of non-positive value %g", x)
	}
	return math.Log(x), nil
}

func log10Op(x float64) (float64, error) {
	if x <= 0 {
		return 0, errkind.New(errkind.LogOfNonPositive, "log10 of non-positive value %g", x)
	}
	return math.Log10(x), nil
}

func identityOp(x float64) (float64, error) { return x, nil }

// unaryOp implements the single-scalar-argument math functions.
type unaryOp struct {
	op func(x float64) (float64, error)
}

func (u unaryOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 1 {
		return nil, errkind.New(errkind.IncorrectArgumentCount,
			"expected 1 argument, got %d", len(args))
	}
	x, err := args[0].AsScalar()
	if err != nil {
		return nil, err
	}
	r, err := u.op(x)
	if err != nil {
		return nil, err
	}
	return []value.Value{value.Scalar(r)}, nil
}
