// Package compiler implements the recipe compiler (spec §4.5 / C5): it
// turns a recipe.Raw JSON tree into a flat, index-addressed ir.Program
// with every slot and function reference pre-resolved. This is the
// direct generalization of insts.Decoder.Decode — decode one JSON node
// into one fully-resolved plan, look up the callee now, never later —
// just operating over a JSON tree instead of a 32-bit instruction word.
package compiler

import (
	"encoding/json"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/ir"
	"github.com/sarchlab/mcrecipe/recipe"
	"github.com/sarchlab/mcrecipe/registry"
)

// Compile turns raw into a Program, resolving every variable name to a
// slot index and every function name to a registry.Factory at compile
// time (spec §4.5 Algorithm, steps 1-5).
func Compile(raw *recipe.Raw, reg *registry.Registry) (*ir.Program, error) {
	vars := ir.NewVariableRegistry()

	legacy := len(raw.VariableRegistry) > 0
	if legacy {
		for _, name := range raw.VariableRegistry {
			vars.SlotFor(name)
		}
	} else {
		if err := declareResults(raw.PreTrialSteps, vars); err != nil {
			return nil, err
		}
		if err := declareResults(raw.PerTrialSteps, vars); err != nil {
			return nil, err
		}
	}

	preSteps, err := compileSteps(raw.PreTrialSteps, reg, vars)
	if err != nil {
		return nil, err
	}
	perSteps, err := compileSteps(raw.PerTrialSteps, reg, vars)
	if err != nil {
		return nil, err
	}

	outputSlot, err := resolveOutputSlot(raw, vars)
	if err != nil {
		return nil, err
	}

	return &ir.Program{
		Variables:      vars,
		PreTrialSteps:  preSteps,
		PerTrialSteps:  perSteps,
		OutputSlot:     outputSlot,
		NumTrials:      raw.SimulationConfig.NumTrials,
		OutputFilePath: raw.SimulationConfig.OutputFile,
	}, nil
}

func resolveOutputSlot(raw *recipe.Raw, vars *ir.VariableRegistry) (int, error) {
	if raw.OutputVariableIdx != nil {
		slot := *raw.OutputVariableIdx
		if slot < 0 || slot >= vars.Len() {
			return 0, errkind.New(errkind.UnknownError,
				"output_variable_index %d out of range [0,%d)", slot, vars.Len())
		}
		return slot, nil
	}
	slot, ok := vars.Lookup(raw.OutputVariable)
	if !ok {
		return 0, errkind.New(errkind.UnknownError,
			"output variable %q is never defined", raw.OutputVariable)
	}
	return slot, nil
}

// declareResults walks steps in order, assigning a slot to each step's
// declared result name(s) on first appearance (spec §4.5 step 2).
func declareResults(steps []recipe.Step, vars *ir.VariableRegistry) error {
	for i, step := range steps {
		switch step.Type {
		case "literal_assignment", "conditional_assignment":
			name, err := decodeSingleResult(step.Result)
			if err != nil {
				return errkind.NewAt(errkind.RecipeParseError, step.Line, "step %d: %v", i, err)
			}
			vars.SlotFor(name)
		case "execution_assignment":
			names, err := decodeResultNames(step.Result)
			if err != nil {
				return errkind.NewAt(errkind.RecipeParseError, step.Line, "step %d: %v", i, err)
			}
			for _, name := range names {
				vars.SlotFor(name)
			}
		default:
			return errkind.NewAt(errkind.RecipeParseError, step.Line, "unknown step type %q", step.Type)
		}
	}
	return nil
}

func compileSteps(steps []recipe.Step, reg *registry.Registry, vars *ir.VariableRegistry) ([]ir.Step, error) {
	out := make([]ir.Step, 0, len(steps))
	for i, raw := range steps {
		step, err := compileStep(raw, reg, vars)
		if err != nil {
			return nil, errkind.NewAt(errkind.KindOf(err), raw.Line, "step %d: %s", i, messageOf(err))
		}
		out = append(out, step)
	}
	return out, nil
}

// messageOf returns err's bare message without its line prefix, since
// compileSteps re-annotates with the step's own line.
func messageOf(err error) string {
	if e, ok := errkind.As(err); ok {
		return e.Message
	}
	return err.Error()
}

func compileStep(raw recipe.Step, reg *registry.Registry, vars *ir.VariableRegistry) (ir.Step, error) {
	switch raw.Type {
	case "literal_assignment":
		name, err := decodeSingleResult(raw.Result)
		if err != nil {
			return ir.Step{}, err
		}
		slot, _ := vars.Lookup(name)
		lit, err := decodeLiteral(raw.Value)
		if err != nil {
			return ir.Step{}, err
		}
		return ir.Step{
			Kind:         ir.StepLiteralAssign,
			Line:         raw.Line,
			LiteralSlot:  slot,
			LiteralValue: lit,
		}, nil

	case "execution_assignment":
		names, err := decodeResultNames(raw.Result)
		if err != nil {
			return ir.Step{}, err
		}
		slots := make([]int, len(names))
		for i, name := range names {
			slots[i], _ = vars.Lookup(name)
		}
		factory, err := reg.Lookup(raw.Function)
		if err != nil {
			return ir.Step{}, err
		}
		args := make([]ir.ArgPlan, len(raw.Args))
		for i, a := range raw.Args {
			plan, err := compileArgPlan(a, reg, vars)
			if err != nil {
				return ir.Step{}, err
			}
			args[i] = plan
		}
		return ir.Step{
			Kind:         ir.StepCallAssign,
			Line:         raw.Line,
			CallSlots:    slots,
			CallFunction: raw.Function,
			CallFactory:  factory,
			CallArgs:     args,
		}, nil

	case "conditional_assignment":
		name, err := decodeSingleResult(raw.Result)
		if err != nil {
			return ir.Step{}, err
		}
		slot, _ := vars.Lookup(name)
		cond, err := compileArgPlan(raw.Condition, reg, vars)
		if err != nil {
			return ir.Step{}, err
		}
		thenPlan, err := compileArgPlan(raw.ThenExpr, reg, vars)
		if err != nil {
			return ir.Step{}, err
		}
		elsePlan, err := compileArgPlan(raw.ElseExpr, reg, vars)
		if err != nil {
			return ir.Step{}, err
		}
		return ir.Step{
			Kind:          ir.StepCondAssign,
			Line:          raw.Line,
			CondSlot:      slot,
			CondCondition: cond,
			CondThen:      thenPlan,
			CondElse:      elsePlan,
		}, nil

	default:
		return ir.Step{}, errkind.New(errkind.RecipeParseError, "unknown step type %q", raw.Type)
	}
}

// argNode is the permissive decode target for one Arg node (spec §6
// Arg grammar): every field optional, interpreted positionally by Type.
type argNode struct {
	Type      string            `json:"type"`
	Value     json.RawMessage   `json:"value"`
	Function  string            `json:"function"`
	Args      []json.RawMessage `json:"args"`
	Condition json.RawMessage   `json:"condition"`
	ThenExpr  json.RawMessage   `json:"then_expr"`
	ElseExpr  json.RawMessage   `json:"else_expr"`
	Line      int               `json:"line"`
}

// compileArgPlan recursively compiles one Arg JSON node into an
// ir.ArgPlan (spec §4.5 step 4). A bare JSON number or array of numbers
// is a shorthand literal; everything else is an object tagged by type.
func compileArgPlan(raw json.RawMessage, reg *registry.Registry, vars *ir.VariableRegistry) (ir.ArgPlan, error) {
	if raw == nil {
		return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "missing argument")
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return ir.ArgPlan{Kind: ir.ArgLiteral, Literal: ir.LiteralValue{Kind: ir.LiteralScalar, Scalar: num}}, nil
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err == nil {
		return ir.ArgPlan{Kind: ir.ArgLiteral, Literal: ir.LiteralValue{Kind: ir.LiteralVector, Vector: vec}}, nil
	}

	var node argNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "malformed argument: %v", err)
	}

	switch node.Type {
	case "scalar_literal":
		v, err := decodeLiteral(node.Value)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		return ir.ArgPlan{Kind: ir.ArgLiteral, Line: node.Line, Literal: v}, nil
	case "vector_literal":
		var v []float64
		if err := json.Unmarshal(node.Value, &v); err != nil {
			return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "invalid vector_literal value: %v", err)
		}
		return ir.ArgPlan{Kind: ir.ArgLiteral, Line: node.Line, Literal: ir.LiteralValue{Kind: ir.LiteralVector, Vector: v}}, nil
	case "boolean_literal":
		var v bool
		if err := json.Unmarshal(node.Value, &v); err != nil {
			return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "invalid boolean_literal value: %v", err)
		}
		return ir.ArgPlan{Kind: ir.ArgLiteral, Line: node.Line, Literal: ir.LiteralValue{Kind: ir.LiteralBool, Bool: v}}, nil
	case "string_literal":
		var v string
		if err := json.Unmarshal(node.Value, &v); err != nil {
			return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "invalid string_literal value: %v", err)
		}
		return ir.ArgPlan{Kind: ir.ArgLiteral, Line: node.Line, Literal: ir.LiteralValue{Kind: ir.LiteralString, String: v}}, nil

	case "variable_index":
		slot, err := decodeVariableRef(node.Value, vars)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		return ir.ArgPlan{Kind: ir.ArgSlotRef, Line: node.Line, Slot: slot}, nil

	case "execution_assignment":
		factory, err := reg.Lookup(node.Function)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		nested := make([]ir.ArgPlan, len(node.Args))
		for i, a := range node.Args {
			plan, err := compileArgPlan(a, reg, vars)
			if err != nil {
				return ir.ArgPlan{}, err
			}
			nested[i] = plan
		}
		return ir.ArgPlan{
			Kind:           ir.ArgNested,
			Line:           node.Line,
			NestedFunction: node.Function,
			NestedFactory:  factory,
			NestedArgs:     nested,
		}, nil

	case "conditional_expression":
		cond, err := compileArgPlan(node.Condition, reg, vars)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		thenPlan, err := compileArgPlan(node.ThenExpr, reg, vars)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		elsePlan, err := compileArgPlan(node.ElseExpr, reg, vars)
		if err != nil {
			return ir.ArgPlan{}, err
		}
		return ir.ArgPlan{
			Kind:          ir.ArgConditional,
			Line:          node.Line,
			CondCondition: &cond,
			CondThen:      &thenPlan,
			CondElse:      &elsePlan,
		}, nil

	default:
		return ir.ArgPlan{}, errkind.New(errkind.RecipeParseError, "unknown argument type %q", node.Type)
	}
}

// decodeVariableRef accepts either an integer slot index or a variable
// name, per spec §6's note that "the compiler also accepts name->index
// earlier".
func decodeVariableRef(raw json.RawMessage, vars *ir.VariableRegistry) (int, error) {
	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil {
		if idx < 0 || idx >= vars.Len() {
			return 0, errkind.New(errkind.IndexOutOfBounds, "variable_index %d out of range [0,%d)", idx, vars.Len())
		}
		return idx, nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		slot, ok := vars.Lookup(name)
		if !ok {
			return 0, errkind.New(errkind.UnknownError, "variable %q is never defined", name)
		}
		return slot, nil
	}
	return 0, errkind.New(errkind.RecipeParseError, "invalid variable_index value")
}

func decodeSingleResult(raw json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", errkind.New(errkind.RecipeParseError, "invalid result name: %v", err)
	}
	return name, nil
}

// decodeResultNames accepts either a single result name or a list,
// spec §6's "string | [string]" for execution_assignment.result.
func decodeResultNames(raw json.RawMessage) ([]string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return []string{name}, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}
	return nil, errkind.New(errkind.RecipeParseError, "invalid result: expected a string or array of strings")
}

// decodeLiteral decodes a bare value (spec §4.5 step 3's
// literal_assignment) as whichever of scalar/vector/bool/string it
// unmarshals to.
func decodeLiteral(raw json.RawMessage) (ir.LiteralValue, error) {
	var s float64
	if err := json.Unmarshal(raw, &s); err == nil {
		return ir.LiteralValue{Kind: ir.LiteralScalar, Scalar: s}, nil
	}
	var v []float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return ir.LiteralValue{Kind: ir.LiteralVector, Vector: v}, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return ir.LiteralValue{Kind: ir.LiteralBool, Bool: b}, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return ir.LiteralValue{Kind: ir.LiteralString, String: str}, nil
	}
	return ir.LiteralValue{}, errkind.New(errkind.RecipeParseError, "value %s is neither scalar, vector, boolean, nor string", string(raw))
}
