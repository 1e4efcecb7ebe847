package funcs

import (
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterComparisons installs the six binary comparison ops of spec
// §4.4.2.
func RegisterComparisons(r *registry.Registry) {
	r.Register("__eq__", func() registry.Executable { return comparisonOp{kind: cmpEQ} })
	r.Register("__neq__", func() registry.Executable { return comparisonOp{kind: cmpNEQ} })
	r.Register("__gt__", func() registry.Executable { return comparisonOp{kind: cmpGT} })
	r.Register("__lt__", func() registry.Executable { return comparisonOp{kind: cmpLT} })
	r.Register("__gte__", func() registry.Executable { return comparisonOp{kind: cmpGTE} })
	r.Register("__lte__", func() registry.Executable { return comparisonOp{kind: cmpLTE} })
}

type cmpKind int

const (
	cmpEQ cmpKind = iota
	cmpNEQ
	cmpGT
	cmpLT
	cmpGTE
	cmpLTE
)

// comparisonOp implements spec §4.4.2: scalar/scalar supports all six
// orderings; bool/bool supports only eq/neq; a type mismatch reports
// false for eq, true for neq, and fails every other operator.
type comparisonOp struct {
	kind cmpKind
}

func (c comparisonOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount,
			"expected 2 arguments, got %d", len(args))
	}
	a, b := args[0], args[1]

	if a.Kind() != b.Kind() {
		switch c.kind {
		case cmpEQ:
			return []value.Value{value.Bool(false)}, nil
		case cmpNEQ:
			return []value.Value{value.Bool(true)}, nil
		default:
			return nil, errkind.New(errkind.MismatchedArgumentType,
				"cannot compare %s and %s", a.Kind(), b.Kind())
		}
	}

	switch a.Kind() {
	case value.KindScalar:
		av, _ := a.AsScalar()
		bv, _ := b.AsScalar()
		return []value.Value{value.Bool(scalarCompare(c.kind, av, bv))}, nil

	case value.KindBool:
		if c.kind != cmpEQ && c.kind != cmpNEQ {
			return nil, errkind.New(errkind.MismatchedArgumentType,
				"boolean operands only support __eq__ and __neq__")
		}
		av, _ := a.AsBool()
		bv, _ := b.AsBool()
		result := av == bv
		if c.kind == cmpNEQ {
			result = !result
		}
		return []value.Value{value.Bool(result)}, nil

	case value.KindString:
		if c.kind != cmpEQ && c.kind != cmpNEQ {
			return nil, errkind.New(errkind.MismatchedArgumentType,
				"string operands only support __eq__ and __neq__")
		}
		av, _ := a.AsString()
		bv, _ := b.AsString()
		result := av == bv
		if c.kind == cmpNEQ {
			result = !result
		}
		return []value.Value{value.Bool(result)}, nil

	default:
		return nil, errkind.New(errkind.MismatchedArgumentType,
			"operands of kind %s are not comparable", a.Kind())
	}
}

func scalarCompare(kind cmpKind, a, b float64) bool {
	switch kind {
	case cmpEQ:
		return a == b
	case cmpNEQ:
		return a != b
	case cmpGT:
		return a > b
	case cmpLT:
		return a < b
	case cmpGTE:
		return a >= b
	case cmpLTE:
		return a <= b
	default:
		return false
	}
}
