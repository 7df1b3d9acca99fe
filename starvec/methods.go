package starvec

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

type builtinMethod func(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

var methods = map[string]builtinMethod{
	"push":      vectorPush,
	"pop":       vectorPop,
	"shift":     vectorShift,
	"unshift":   vectorUnshift,
	"get":       vectorGet,
	"set":       vectorSet,
	"set_range": vectorSetRange,
	"realloc":   vectorRealloc,
	"clone":     vectorClone,
	"values":    vectorValues,
	"len":       vectorLen,
	"cap":       vectorCap,
}

// Attr implements starlark.HasAttrs.
func (v *Value) Attr(name string) (starlark.Value, error) {
	switch name {
	case "type":
		return starlark.String(v.vec.ElementType()), nil
	case "size":
		return starlark.MakeInt(v.vec.ElementSize()), nil
	case "backend":
		return starlark.String(v.vec.Backend().String()), nil
	}

	m, ok := methods[name]
	if !ok {
		return nil, nil
	}
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return m(b, v, args, kwargs)
	}).BindReceiver(v), nil
}

// AttrNames implements starlark.HasAttrs.
func (v *Value) AttrNames() []string {
	names := []string{"backend", "size", "type"}
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrapErr(b *starlark.Builtin, err error) error {
	return fmt.Errorf("%s: %w", b.Name(), err)
}

func vectorPush(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	if err := v.checkMutable("push to"); err != nil {
		return nil, wrapErr(b, err)
	}
	gv, err := fromStarlark(x)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	if err := v.vec.Push(gv); err != nil {
		return nil, wrapErr(b, err)
	}
	return starlark.None, nil
}

func vectorUnshift(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	if err := v.checkMutable("unshift to"); err != nil {
		return nil, wrapErr(b, err)
	}
	gv, err := fromStarlark(x)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	if err := v.vec.Unshift(gv); err != nil {
		return nil, wrapErr(b, err)
	}
	return starlark.None, nil
}

func vectorPop(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := v.checkMutable("pop from"); err != nil {
		return nil, wrapErr(b, err)
	}
	x, err := v.vec.Pop()
	if err != nil {
		return nil, wrapErr(b, err)
	}
	return toStarlark(x), nil
}

func vectorShift(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := v.checkMutable("shift from"); err != nil {
		return nil, wrapErr(b, err)
	}
	x, err := v.vec.Shift()
	if err != nil {
		return nil, wrapErr(b, err)
	}
	return toStarlark(x), nil
}

func vectorGet(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var i int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &i); err != nil {
		return nil, err
	}
	x, err := v.vec.Get(i)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	return toStarlark(x), nil
}

func vectorSet(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		i int
		x starlark.Value
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &i, &x); err != nil {
		return nil, err
	}
	if err := v.checkMutable("set element of"); err != nil {
		return nil, wrapErr(b, err)
	}
	gv, err := fromStarlark(x)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	if err := v.vec.Set(i, gv); err != nil {
		return nil, wrapErr(b, err)
	}
	return starlark.None, nil
}

func vectorSetRange(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		from, n int
		x       starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "from", &from, "value", &x, "n", &n); err != nil {
		return nil, err
	}
	if err := v.checkMutable("set range of"); err != nil {
		return nil, wrapErr(b, err)
	}
	gv, err := fromStarlark(x)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	if err := v.vec.SetRange(from, gv, n); err != nil {
		return nil, wrapErr(b, err)
	}
	return starlark.None, nil
}

func vectorRealloc(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	if err := v.checkMutable("realloc"); err != nil {
		return nil, wrapErr(b, err)
	}
	if err := v.vec.Realloc(n); err != nil {
		return nil, wrapErr(b, err)
	}
	return starlark.None, nil
}

func vectorClone(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		typeName string
		n        starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "type?", &typeName, "n?", &n); err != nil {
		return nil, err
	}

	length := v.vec.Len()
	if n != starlark.None {
		i, err := starlark.AsInt32(n)
		if err != nil {
			return nil, wrapErr(b, err)
		}
		length = i
	}

	w, err := v.vec.Clone(typeName, length)
	if err != nil {
		return nil, wrapErr(b, err)
	}
	return NewValue(w), nil
}

func vectorValues(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return toStarlark(v.vec.Values()), nil
}

func vectorLen(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(v.vec.Len()), nil
}

func vectorCap(b *starlark.Builtin, v *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(v.vec.Cap()), nil
}
