package funcs

import (
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterLogicals installs __and__, __or__, and __not__ (spec §4.4.2).
func RegisterLogicals(r *registry.Registry) {
	r.Register("__and__", func() registry.Executable { return andOp{} })
	r.Register("__or__", func() registry.Executable { return orOp{} })
	r.Register("__not__", func() registry.Executable { return notOp{} })
}

// andOp requires at least one boolean argument and short-circuits on
// the first false. Note all arguments are already resolved by the time
// an Executable runs (spec §4.7 resolves argument plans before
// invoking), so "short-circuit" here means the fold stops scanning the
// already-resolved list early, not that evaluation of an argument is
// skipped — true short-circuit laziness on the boolean is the job of
// ir.Conditional, not of __and__/__or__.
type andOp struct{}

func (andOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) == 0 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected at least 1 argument, got 0")
	}
	for _, a := range args {
		b, err := a.AsBool()
		if err != nil {
			return nil, errkind.New(errkind.LogicalOperatorRequiresBoolean,
				"__and__ requires boolean arguments, got %s", a.Kind())
		}
		if !b {
			return []value.Value{value.Bool(false)}, nil
		}
	}
	return []value.Value{value.Bool(true)}, nil
}

type orOp struct{}

func (orOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) == 0 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected at least 1 argument, got 0")
	}
	for _, a := range args {
		b, err := a.AsBool()
		if err != nil {
			return nil, errkind.New(errkind.LogicalOperatorRequiresBoolean,
				"__or__ requires boolean arguments, got %s", a.Kind())
		}
		if b {
			return []value.Value{value.Bool(true)}, nil
		}
	}
	return []value.Value{value.Bool(false)}, nil
}

type notOp struct{}

func (notOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 1 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 1 argument, got %d", len(args))
	}
	b, err := args[0].AsBool()
	if err != nil {
		return nil, errkind.New(errkind.LogicalOperatorRequiresBoolean,
			"__not__ requires a boolean argument, got %s", args[0].Kind())
	}
	return []value.Value{value.Bool(!b)}, nil
}
