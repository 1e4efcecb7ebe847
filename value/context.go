package value

import "github.com/sarchlab/mcrecipe/errkind"

// Context is the fixed-length, index-addressed mapping from slot index
// to Value that is the sole per-trial state (spec §3 Context). It plays
// the role the teacher's RegFile plays for a CPU: a dense array cloned
// once per trial rather than a keyed map walked on every access.
type Context []Value

// NewContext allocates a Context of the given length with every slot
// defaulted to the scalar zero value.
func NewContext(size int) Context {
	ctx := make(Context, size)
	for i := range ctx {
		ctx[i] = Scalar(0)
	}
	return ctx
}

// Clone returns an independent copy of ctx, the per-trial snapshot copy
// spec §4.8 requires to cost O(context size). Unlike RegFile.Reset,
// which reallocates a fresh zero array, Clone copies the snapshot's
// actual values forward since the snapshot (not zero) is each trial's
// starting state.
func (c Context) Clone() Context {
	clone := make(Context, len(c))
	copy(clone, c)
	return clone
}

// Get performs a bounds-checked read, failing IndexOutOfBounds rather
// than returning a zero value — unlike RegFile.ReadReg's silent
// out-of-range default, an out-of-range slot here is always a compiler
// bug, not an architectural always-zero register, so it must fail loud.
func (c Context) Get(slot int) (Value, error) {
	if slot < 0 || slot >= len(c) {
		return Value{}, errkind.New(errkind.IndexOutOfBounds,
			"slot %d out of range [0,%d)", slot, len(c))
	}
	return c[slot], nil
}

// Set performs a bounds-checked write, overwriting the slot rather than
// mutating the Value in place (spec §3: "slots are overwritten rather
// than mutated").
func (c Context) Set(slot int, v Value) error {
	if slot < 0 || slot >= len(c) {
		return errkind.New(errkind.IndexOutOfBounds,
			"slot %d out of range [0,%d)", slot, len(c))
	}
	c[slot] = v
	return nil
}
