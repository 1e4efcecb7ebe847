// Package value implements the tagged value carried between compiled
// steps (spec §3 Value) and the fixed-length context it lives in,
// modeled on the teacher's RegFile: a dense, bounds-checked, cheaply
// cloned slot array rather than a keyed map.
package value

import (
	"fmt"

	"github.com/sarchlab/mcrecipe/errkind"
)

// Kind identifies which alternative of the Value union is populated.
type Kind int

const (
	KindScalar Kind = iota
	KindVector
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged union over scalar, vector, bool, and string, exactly
// the four alternatives of spec §3. It is immutable once constructed;
// callers overwrite a slot with a new Value rather than mutating one.
type Value struct {
	kind   Kind
	scalar float64
	vector []float64
	bool_  bool
	str    string
}

// Scalar constructs a scalar Value.
func Scalar(x float64) Value { return Value{kind: KindScalar, scalar: x} }

// VectorOf constructs a vector Value. The slice is not copied; callers
// must not mutate it afterward since Values are treated as immutable.
func VectorOf(xs []float64) Value { return Value{kind: KindVector, vector: xs} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, bool_: b} }

// Str constructs a string Value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// AsScalar extracts the scalar alternative, failing MismatchedArgumentType
// if v does not hold one.
func (v Value) AsScalar() (float64, error) {
	if v.kind != KindScalar {
		return 0, errkind.New(errkind.MismatchedArgumentType,
			"expected scalar, got %s", v.kind)
	}
	return v.scalar, nil
}

// AsVector extracts the vector alternative.
func (v Value) AsVector() ([]float64, error) {
	if v.kind != KindVector {
		return nil, errkind.New(errkind.MismatchedArgumentType,
			"expected vector, got %s", v.kind)
	}
	return v.vector, nil
}

// AsBool extracts the boolean alternative.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, errkind.New(errkind.MismatchedArgumentType,
			"expected bool, got %s", v.kind)
	}
	return v.bool_, nil
}

// AsString extracts the string alternative.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", errkind.New(errkind.MismatchedArgumentType,
			"expected string, got %s", v.kind)
	}
	return v.str, nil
}

// Equal reports elementwise equality for scalar and bool (numeric and
// boolean equality), lexicographic equality for string, and is not
// defined for vectors as a primitive (spec §4.1) — comparing two
// vectors with Equal always reports false since no executable is
// specified to consume it.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindBool:
		return v.bool_ == other.bool_
	case KindString:
		return v.str == other.str
	default:
		return false
	}
}

// String renders v for diagnostics and preview output.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return fmt.Sprintf("%g", v.scalar)
	case KindVector:
		return fmt.Sprintf("%v", v.vector)
	case KindBool:
		return fmt.Sprintf("%t", v.bool_)
	case KindString:
		return v.str
	default:
		return "<invalid>"
	}
}
