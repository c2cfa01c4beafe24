// Package input reads binding lists from token sources.
//
// A binding list declares variables and shapes of their values:
//
//	var n int
//	var a [][]int32
//	e := input.Scan(src, "n: usize, a: [[i32]; n]", &n, &a)
//
// Bindings are read strictly left to right, depth first. Array lengths may refer to values bound
// earlier in the same list. Values are read directly into pointer targets: numbers are converted
// with range checks, arrays go to slices or Go arrays of matching length, tuples go to structs
// (one exported field per element), slices, arrays, or interfaces.
// Targets are modified only if the whole list is read successfully.
//
// Several lists may be read one after another from the same source, each one starting where
// the previous one has stopped. Values read by earlier lists are passed to later ones as Vars:
//
//	e := input.Scan(src, "n: usize", &n)
//	...
//	e = input.ScanVars(src, "a: [i32; n]", input.Vars{"n": int64(n)}, &a)
package input

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Velocidex/ordereddict"

	"github.com/ava12/procin"
	"github.com/ava12/procin/shape"
	"github.com/ava12/procin/source"
)

// Error codes used by input:
const (
	// ErrUnknownShape indicates that binding list refers to a type name not registered with read.Register.
	ErrUnknownShape = procin.InputErrors + iota

	// ErrBind indicates that a value cannot be stored to its target.
	ErrBind

	// ErrArgs indicates wrong number or kind of Scan arguments.
	ErrArgs

	// ErrPattern indicates that a tuple pattern does not match its shape.
	ErrPattern
)

// Vars are values of names used in length expressions but bound outside of the list.
type Vars map[string]int64

func (v Vars) names() []string {
	res := make([]string, 0, len(v))
	for name := range v {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Group is a compiled binding list. It is immutable and safe for concurrent use.
type Group struct {
	text     string
	tree     *shape.Group
	bindings []*binding
	names    []string
	vars     []string
}

type binding struct {
	pattern *shape.Pattern
	node    *node
}

// Compile parses and checks a binding list.
// Returns nil and *procin.Error on error.
func Compile(text string) (*Group, error) {
	return CompileVars(text)
}

// CompileVars is like Compile, but length expressions may also refer to vars.
// Their values must be passed to ScanVars or ReadVars.
func CompileVars(text string, vars ...string) (*Group, error) {
	tree, e := shape.ParseVars(text, vars...)
	if e != nil {
		return nil, e
	}

	g := &Group{text: text, tree: tree, names: tree.Names(), vars: vars}
	for _, b := range tree.Bindings {
		n, e := compileNode(b.Shape)
		if e != nil {
			return nil, e
		}
		if e = checkPattern(b.Pattern, b.Shape); e != nil {
			return nil, e
		}
		g.bindings = append(g.bindings, &binding{b.Pattern, n})
	}
	return g, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string) *Group {
	g, e := Compile(text)
	if e != nil {
		panic(e)
	}
	return g
}

// maxCached limits the number of lists compiled by package-level functions and kept for reuse.
// The cache is emptied when the limit is reached.
const maxCached = 1024

var cache = struct {
	sync.RWMutex
	groups map[string]*Group
}{groups: map[string]*Group{}}

func cached(text string, vars []string) (*Group, error) {
	key := text
	if len(vars) > 0 {
		key += "\x00" + strings.Join(vars, "\x00")
	}

	cache.RLock()
	g := cache.groups[key]
	cache.RUnlock()
	if g != nil {
		return g, nil
	}

	g, e := CompileVars(text, vars...)
	if e != nil {
		return nil, e
	}

	cache.Lock()
	defer cache.Unlock()
	if len(cache.groups) >= maxCached {
		cache.groups = map[string]*Group{}
	}
	cache.groups[key] = g
	return g, nil
}

// Text returns the binding list text as given to Compile.
func (g *Group) Text() string {
	return g.text
}

// String returns normalized binding list.
func (g *Group) String() string {
	return g.tree.String()
}

// Names returns bound names in order, "_" excluded.
func (g *Group) Names() []string {
	return append([]string(nil), g.names...)
}

// Scan reads the list from s and stores values to ptrs, one non-nil pointer per bound name in order.
// Returns *procin.Error on error, in this case nothing is stored.
func (g *Group) Scan(s source.Source, ptrs ...any) error {
	return g.ScanVars(s, nil, ptrs...)
}

// ScanVars is like Scan, vars supply values of names declared with CompileVars.
func (g *Group) ScanVars(s source.Source, vars Vars, ptrs ...any) error {
	if len(ptrs) != len(g.names) {
		return procin.FormatError(ErrArgs, "binding list %q binds %d names, got %d targets", g.text, len(g.names), len(ptrs))
	}

	targets := make([]reflect.Value, len(ptrs))
	for i, p := range ptrs {
		v := reflect.ValueOf(p)
		if v.Kind() != reflect.Pointer || v.IsNil() {
			return procin.FormatError(ErrArgs, "target for %q must be a non-nil pointer, got %T", g.names[i], p)
		}
		targets[i] = v.Elem()
	}

	values, e := g.read(s, vars, func(i int) reflect.Type {
		return targets[i].Type()
	})
	if e != nil {
		return e
	}

	for i, v := range values {
		targets[i].Set(v)
	}
	return nil
}

// Read reads the list from s and returns bound values by name in binding order.
// Scalars have their registered types, arrays are typed slices, tuples are []any.
// Later bindings of the same name replace earlier ones.
func (g *Group) Read(s source.Source) (*ordereddict.Dict, error) {
	return g.ReadVars(s, nil)
}

// ReadVars is like Read, vars supply values of names declared with CompileVars.
func (g *Group) ReadVars(s source.Source, vars Vars) (*ordereddict.Dict, error) {
	values, e := g.read(s, vars, nil)
	if e != nil {
		return nil, e
	}

	res := ordereddict.NewDict()
	for i, v := range values {
		res.Set(g.names[i], v.Interface())
	}
	return res, nil
}

func (g *Group) read(s source.Source, vars Vars, target func(int) reflect.Type) ([]reflect.Value, error) {
	for _, name := range g.vars {
		if _, found := vars[name]; !found {
			return nil, procin.FormatError(ErrArgs, "binding list %q needs a value for %s", g.text, name)
		}
	}

	c := &context{
		src:    s,
		vars:   vars,
		env:    map[string]reflect.Value{},
		target: target,
		values: make([]reflect.Value, 0, len(g.names)),
	}
	for _, b := range g.bindings {
		if e := c.bind(b.pattern, b.node); e != nil {
			return nil, e
		}
	}
	return c.values, nil
}

// Scan compiles (or takes from cache) binding list text and reads it from s to ptrs.
func Scan(s source.Source, text string, ptrs ...any) error {
	return ScanVars(s, text, nil, ptrs...)
}

// ScanVars is like Scan, length expressions may refer to vars.
func ScanVars(s source.Source, text string, vars Vars, ptrs ...any) error {
	g, e := cached(text, vars.names())
	if e != nil {
		return e
	}
	return g.ScanVars(s, vars, ptrs...)
}

// Read compiles (or takes from cache) binding list text and reads it from s.
func Read(s source.Source, text string) (*ordereddict.Dict, error) {
	return ReadVars(s, text, nil)
}

// ReadVars is like Read, length expressions may refer to vars.
func ReadVars(s source.Source, text string, vars Vars) (*ordereddict.Dict, error) {
	g, e := cached(text, vars.names())
	if e != nil {
		return nil, e
	}
	return g.ReadVars(s, vars)
}
