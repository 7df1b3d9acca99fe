package starvec

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/hupe1980/vecbuf"
)

const optionsKey = "vecbuf.options"

// SetOptions sets the vector options used by constructors running on thread.
func SetOptions(thread *starlark.Thread, opts ...vecbuf.Option) {
	thread.SetLocal(optionsKey, opts)
}

func threadOptions(thread *starlark.Thread) []vecbuf.Option {
	if thread == nil {
		return nil
	}
	opts, _ := thread.Local(optionsKey).([]vecbuf.Option)
	return opts
}

// Constructor is the vector(type, init=0) builtin. init is either a length
// or an iterable of initial elements.
var Constructor = starlark.NewBuiltin("vector", newVector)

// Module groups the constructor with type helpers under the name "vector".
var Module = &starlarkstruct.Module{
	Name: "vector",
	Members: starlark.StringDict{
		"new":       Constructor,
		"elem_size": starlark.NewBuiltin("vector.elem_size", elemSize),
	},
}

// Predeclared returns the names to predeclare for scripts using vectors.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"vector":  Constructor,
		"vectors": Module,
	}
}

func newVector(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		typeName string
		init     starlark.Value = starlark.MakeInt(0)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "type", &typeName, "init?", &init); err != nil {
		return nil, err
	}

	opts := threadOptions(thread)

	if iterable, ok := init.(starlark.Iterable); ok {
		values, err := fromIterable(iterable)
		if err != nil {
			return nil, wrapErr(b, err)
		}
		v, err := vecbuf.NewFrom(typeName, values, opts...)
		if err != nil {
			return nil, wrapErr(b, err)
		}
		return NewValue(v), nil
	}

	n, err := starlark.AsInt32(init)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	v, err := vecbuf.New(typeName, n, opts...)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	return NewValue(v), nil
}

// elemSize reports the native element width of a type name, or 0 for
// types stored in the fallback backend.
func elemSize(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var typeName string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &typeName); err != nil {
		return nil, err
	}
	v, err := vecbuf.New(typeName, 0, threadOptions(thread)...)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	defer v.Free()
	return starlark.MakeInt(v.ElementSize()), nil
}
