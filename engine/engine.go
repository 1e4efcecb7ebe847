// Package engine implements the pre-trial phase and per-trial
// interpreter (spec §4.6/§4.7 / C6/C7): running a compiled ir.Program
// against a value.Context. This plays the role Emulator.Run/execute
// plays for the teacher, generalized from "decode one instruction,
// fetch operands from RegFile, dispatch" to "resolve one argument
// plan, fetch values from Context, invoke the executable" — and split
// into a one-shot pre-trial pass and a repeatable per-trial pass
// instead of a single run-to-exit loop.
package engine

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/ir"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// NewEntropyRand returns a *rand.Rand seeded from a nondeterministic
// source (spec §9 "RNG ownership": "seed on first use", never a shared
// global generator). Callers own the returned generator exclusively —
// the scheduler calls this once per worker goroutine.
func NewEntropyRand() *mathrand.Rand {
	var seed int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &seed); err != nil {
		seed = 1
	}
	return mathrand.New(mathrand.NewSource(seed))
}

// RunPreTrial allocates a fresh Context sized to the program's variable
// count and runs PreTrialSteps against it once. The result is the
// snapshot every trial subsequently clones (spec §4.6).
func RunPreTrial(prog *ir.Program) (value.Context, error) {
	ctx := value.NewContext(prog.Variables.Len())
	env := &registry.Env{Rand: NewEntropyRand()}
	if err := runSteps(prog.PreTrialSteps, ctx, env); err != nil {
		return nil, err
	}
	return ctx, nil
}

// RunTrial clones snapshot, executes PerTrialSteps against the clone
// using rng as the trial's RNG, and returns the value read from the
// program's output slot (spec §4.7).
func RunTrial(prog *ir.Program, snapshot value.Context, rng *mathrand.Rand) (value.Value, error) {
	ctx := snapshot.Clone()
	env := &registry.Env{Rand: rng}
	if err := runSteps(prog.PerTrialSteps, ctx, env); err != nil {
		return value.Value{}, err
	}
	return ctx.Get(prog.OutputSlot)
}

func runSteps(steps []ir.Step, ctx value.Context, env *registry.Env) error {
	for _, step := range steps {
		if err := runStep(step, ctx, env); err != nil {
			return err
		}
	}
	return nil
}

func runStep(step ir.Step, ctx value.Context, env *registry.Env) error {
	switch step.Kind {
	case ir.StepLiteralAssign:
		return ctx.Set(step.LiteralSlot, literalValue(step.LiteralValue))

	case ir.StepCallAssign:
		args := make([]value.Value, len(step.CallArgs))
		for i, plan := range step.CallArgs {
			v, err := resolve(plan, ctx, env)
			if err != nil {
				return errkind.WrapCall(err, step.CallFunction, step.Line)
			}
			args[i] = v
		}
		out, err := step.CallFactory().Execute(env, args)
		if err != nil {
			return errkind.WrapCall(err, step.CallFunction, step.Line)
		}
		if len(out) != len(step.CallSlots) {
			return errkind.NewAt(errkind.IncorrectArgumentCount, step.Line,
				"returned %d values, but %d were expected", len(out), len(step.CallSlots))
		}
		for i, slot := range step.CallSlots {
			if err := ctx.Set(slot, out[i]); err != nil {
				return err
			}
		}
		return nil

	case ir.StepCondAssign:
		cond, err := resolve(step.CondCondition, ctx, env)
		if err != nil {
			return err
		}
		taken, err := cond.AsBool()
		if err != nil {
			return errkind.NewAt(errkind.ConditionNotBoolean, step.Line, "condition is not boolean")
		}
		branch := step.CondElse
		if taken {
			branch = step.CondThen
		}
		v, err := resolve(branch, ctx, env)
		if err != nil {
			return err
		}
		return ctx.Set(step.CondSlot, v)

	default:
		return errkind.New(errkind.UnknownError, "unknown step kind %d", step.Kind)
	}
}

// resolve evaluates an ArgPlan to a Value (spec §4.7 step 1): Literal
// returns the embedded value, SlotRef performs a bounds-checked
// context read, Nested recurses inner-first left-to-right and wraps
// any failure with the nested call's name and line, and Conditional
// evaluates only the taken branch (spec §4.9 "Conditional semantics":
// laziness matters because the untaken branch may sample or divide).
func resolve(plan ir.ArgPlan, ctx value.Context, env *registry.Env) (value.Value, error) {
	switch plan.Kind {
	case ir.ArgLiteral:
		return literalValue(plan.Literal), nil

	case ir.ArgSlotRef:
		return ctx.Get(plan.Slot)

	case ir.ArgNested:
		args := make([]value.Value, len(plan.NestedArgs))
		for i, inner := range plan.NestedArgs {
			v, err := resolve(inner, ctx, env)
			if err != nil {
				return value.Value{}, errkind.WrapNested(err, plan.NestedFunction, plan.Line)
			}
			args[i] = v
		}
		out, err := plan.NestedFactory().Execute(env, args)
		if err != nil {
			return value.Value{}, errkind.WrapNested(err, plan.NestedFunction, plan.Line)
		}
		if len(out) != 1 {
			return value.Value{}, errkind.NewAt(errkind.IncorrectArgumentCount, plan.Line,
				"returned %d values, but 1 were expected", len(out))
		}
		return out[0], nil

	case ir.ArgConditional:
		cond, err := resolve(*plan.CondCondition, ctx, env)
		if err != nil {
			return value.Value{}, err
		}
		taken, err := cond.AsBool()
		if err != nil {
			return value.Value{}, errkind.NewAt(errkind.ConditionNotBoolean, plan.Line, "condition is not boolean")
		}
		if taken {
			return resolve(*plan.CondThen, ctx, env)
		}
		return resolve(*plan.CondElse, ctx, env)

	default:
		return value.Value{}, errkind.New(errkind.UnknownError, "unknown argument plan kind %d", plan.Kind)
	}
}

func literalValue(lit ir.LiteralValue) value.Value {
	switch lit.Kind {
	case ir.LiteralScalar:
		return value.Scalar(lit.Scalar)
	case ir.LiteralVector:
		return value.VectorOf(lit.Vector)
	case ir.LiteralBool:
		return value.Bool(lit.Bool)
	case ir.LiteralString:
		return value.Str(lit.String)
	default:
		return value.Scalar(0)
	}
}
