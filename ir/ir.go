// Package ir defines the compiled, index-addressed linear program the
// recipe compiler produces: Step and ArgPlan, spec §3's "Step" and
// "Argument plan (pre-resolved)". These types hold no compilation
// logic of their own, the same split the teacher keeps between
// insts.Instruction (a pure data shape) and insts.Decoder (the
// bytes-to-Instruction logic lives in the compiler package instead).
package ir

import "github.com/sarchlab/mcrecipe/registry"

// StepKind identifies which alternative of Step is populated.
type StepKind int

const (
	StepLiteralAssign StepKind = iota
	StepCallAssign
	StepCondAssign
)

// Step is one item of a compiled program. Exactly one of its fields is
// meaningful, selected by Kind (spec §3 Step).
type Step struct {
	Kind StepKind
	Line int

	// LiteralAssign
	LiteralSlot  int
	LiteralValue LiteralValue

	// CallAssign
	CallSlots    []int
	CallFunction string
	CallFactory  registry.Factory
	CallArgs     []ArgPlan

	// CondAssign
	CondSlot      int
	CondCondition ArgPlan
	CondThen      ArgPlan
	CondElse      ArgPlan
}

// ArgPlanKind identifies which alternative of ArgPlan is populated.
type ArgPlanKind int

const (
	ArgLiteral ArgPlanKind = iota
	ArgSlotRef
	ArgNested
	ArgConditional
)

// ArgPlan is a single pre-resolved function argument (spec §3 Argument
// plan). Argument plans form an acyclic tree: no recursion, no forward
// references, resolved bottom-up at runtime by the engine package's
// resolve function.
type ArgPlan struct {
	Kind ArgPlanKind
	Line int

	// ArgLiteral
	Literal LiteralValue

	// ArgSlotRef
	Slot int

	// ArgNested
	NestedFunction string
	NestedFactory  registry.Factory
	NestedArgs     []ArgPlan

	// ArgConditional
	CondCondition *ArgPlan
	CondThen      *ArgPlan
	CondElse      *ArgPlan
}

// LiteralValueKind identifies which alternative of LiteralValue is set.
type LiteralValueKind int

const (
	LiteralScalar LiteralValueKind = iota
	LiteralVector
	LiteralBool
	LiteralString
)

// LiteralValue is a compile-time literal embedded directly in a plan or
// step, kept distinct from value.Value so this package does not need to
// import the value package's construction helpers during compilation.
type LiteralValue struct {
	Kind   LiteralValueKind
	Scalar float64
	Vector []float64
	Bool   bool
	String string
}

// VariableRegistry maps a recipe variable name to its slot index
// (spec §3 Variable registry), assigned in first-appearance order.
type VariableRegistry struct {
	Slots map[string]int
	Names []string // slot index -> name, for error messages
}

// NewVariableRegistry returns an empty registry.
func NewVariableRegistry() *VariableRegistry {
	return &VariableRegistry{Slots: make(map[string]int)}
}

// SlotFor returns the slot for name, assigning the next available index
// on first appearance.
func (r *VariableRegistry) SlotFor(name string) int {
	if slot, ok := r.Slots[name]; ok {
		return slot
	}
	slot := len(r.Names)
	r.Slots[name] = slot
	r.Names = append(r.Names, name)
	return slot
}

// Lookup returns the slot for name without assigning one.
func (r *VariableRegistry) Lookup(name string) (int, bool) {
	slot, ok := r.Slots[name]
	return slot, ok
}

// Len reports the number of distinct variables registered, i.e. the
// required Context length.
func (r *VariableRegistry) Len() int { return len(r.Names) }

// Program is the full compiled output of the recipe compiler (spec §3
// Program): the two step lists, the output slot, and run parameters.
type Program struct {
	Variables       *VariableRegistry
	PreTrialSteps   []Step
	PerTrialSteps   []Step
	OutputSlot      int
	NumTrials       int
	OutputFilePath  string
}
