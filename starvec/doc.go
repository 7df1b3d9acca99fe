// Package starvec exposes vecbuf vectors to Starlark scripts.
//
// Install the constructor as a predeclared name and run a script:
//
//	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread,
//	    "main.star", src, starvec.Predeclared())
//
// Inside the script:
//
//	v = vector("int32", [10, 20, 30])
//	v.push(40)
//	first = v.shift()   # 10
//	last = v.get(-1)    # 40, 1-based like the Go API
//	also = v[-1]        # 40, Starlark index syntax is 0-based
//
// The get, set and set_range methods use the 1-based, negative-from-end
// indexing of vecbuf.Vector. Subscript syntax follows Starlark sequence
// conventions so that v[0] is the first element and v[-1] the last.
package starvec
