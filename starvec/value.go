package starvec

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/hupe1980/vecbuf"
)

// Value is a Starlark value wrapping a *vecbuf.Vector.
type Value struct {
	vec       *vecbuf.Vector
	frozen    bool
	itercount uint32
}

var (
	_ starlark.Indexable   = (*Value)(nil)
	_ starlark.HasSetIndex = (*Value)(nil)
	_ starlark.Sequence    = (*Value)(nil)
	_ starlark.HasAttrs    = (*Value)(nil)
	_ starlark.Comparable  = (*Value)(nil)
)

// NewValue wraps v.
func NewValue(v *vecbuf.Vector) *Value {
	return &Value{vec: v}
}

// Vector returns the wrapped vector.
func (v *Value) Vector() *vecbuf.Vector { return v.vec }

func (v *Value) String() string       { return v.vec.String() }
func (v *Value) Type() string         { return "vector" }
func (v *Value) Freeze()              { v.frozen = true }
func (v *Value) Truth() starlark.Bool { return v.vec.Len() > 0 }

func (v *Value) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: vector")
}

func (v *Value) Len() int { return v.vec.Len() }

// Index implements starlark.Indexable. The interpreter has already
// normalized i into [0, Len()).
func (v *Value) Index(i int) starlark.Value {
	x, err := v.vec.Get(i + 1)
	if err != nil {
		return starlark.None
	}
	return toStarlark(x)
}

// SetIndex implements starlark.HasSetIndex.
func (v *Value) SetIndex(i int, x starlark.Value) error {
	if err := v.checkMutable("assign to element of"); err != nil {
		return err
	}
	gv, err := fromStarlark(x)
	if err != nil {
		return err
	}
	return v.vec.Set(i+1, gv)
}

func (v *Value) Iterate() starlark.Iterator {
	if !v.frozen {
		v.itercount++
	}
	return &iterator{v: v}
}

func (v *Value) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	w := y.(*Value)
	switch op {
	case syntax.EQL:
		return v.equal(w, depth)
	case syntax.NEQ:
		eq, err := v.equal(w, depth)
		return !eq, err
	default:
		return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
	}
}

func (v *Value) equal(w *Value, depth int) (bool, error) {
	if v.vec.ElementType() != w.vec.ElementType() || v.vec.Len() != w.vec.Len() {
		return false, nil
	}
	for i := range v.vec.Len() {
		eq, err := starlark.EqualDepth(v.Index(i), w.Index(i), depth-1)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func (v *Value) checkMutable(verb string) error {
	if v.frozen {
		return fmt.Errorf("cannot %s frozen vector", verb)
	}
	if v.itercount > 0 {
		return fmt.Errorf("cannot %s vector during iteration", verb)
	}
	return nil
}

type iterator struct {
	v *Value
	i int
}

func (it *iterator) Next(p *starlark.Value) bool {
	if it.i < it.v.Len() {
		*p = it.v.Index(it.i)
		it.i++
		return true
	}
	return false
}

func (it *iterator) Done() {
	if !it.v.frozen {
		it.v.itercount--
	}
}
