package input

import (
	"fmt"
	"math"
	"reflect"

	"github.com/ava12/procin"
	"github.com/ava12/procin/read"
	"github.com/ava12/procin/shape"
	"github.com/ava12/procin/source"
)

// maxPrealloc limits the number of slice elements allocated before they are read.
const maxPrealloc = 1 << 16

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// node is a shape with resolved type names.
type node struct {
	shape *shape.Shape
	entry read.Entry
	elem  *node
	elems []*node
	typ   reflect.Type
}

func compileNode(s *shape.Shape) (*node, error) {
	n := &node{shape: s}
	switch s.Kind {
	case shape.Named:
		entry, found := read.Lookup(s.Name)
		if !found {
			return nil, procin.NewError(ErrUnknownShape, "unknown type "+s.Name, shape.SourceName, s.Line, s.Col)
		}
		n.entry = entry
		n.typ = entry.Type

	case shape.Array, shape.Prefixed:
		elem, e := compileNode(s.Elem)
		if e != nil {
			return nil, e
		}
		n.elem = elem
		n.typ = reflect.SliceOf(elem.typ)

	case shape.Tuple:
		for _, es := range s.Elems {
			elem, e := compileNode(es)
			if e != nil {
				return nil, e
			}
			n.elems = append(n.elems, elem)
		}
		n.typ = reflect.SliceOf(anyType)
	}
	return n, nil
}

func checkPattern(p *shape.Pattern, s *shape.Shape) error {
	if !p.IsTuple() {
		return nil
	}

	if s.Kind != shape.Tuple || len(s.Elems) != len(p.Elems) {
		return procin.NewError(ErrPattern, "pattern "+p.String()+" does not match shape "+s.String(),
			shape.SourceName, p.Line, p.Col)
	}
	for i, ep := range p.Elems {
		if e := checkPattern(ep, s.Elems[i]); e != nil {
			return e
		}
	}
	return nil
}

func bindError(n *node, msg string, params ...any) *procin.Error {
	msg = fmt.Sprintf(msg, params...) + " (shape " + n.shape.String() + ")"
	return procin.NewError(ErrBind, msg, shape.SourceName, n.shape.Line, n.shape.Col)
}

// context holds the state of a single binding list reading.
type context struct {
	src    source.Source
	vars   Vars
	env    map[string]reflect.Value
	target func(int) reflect.Type
	values []reflect.Value
}

func (c *context) bind(p *shape.Pattern, n *node) error {
	if p.IsTuple() {
		for i, ep := range p.Elems {
			if e := c.bind(ep, n.elems[i]); e != nil {
				return e
			}
		}
		return nil
	}

	t := n.typ
	if !p.IsDiscard() && c.target != nil {
		t = c.target(len(c.values))
	}
	dst := reflect.New(t).Elem()
	if e := n.read(c, dst); e != nil {
		return e
	}

	if !p.IsDiscard() {
		c.values = append(c.values, dst)
		c.env[p.Name] = dst
	}
	return nil
}

func (c *context) lookup(name string) (int64, bool) {
	v, found := c.env[name]
	if !found {
		n, found := c.vars[name]
		return n, found
	}
	return intValue(v)
}

func intValue(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		return int64(u), u <= math.MaxInt64
	case reflect.Interface:
		if v.IsNil() {
			return 0, false
		}
		return intValue(v.Elem())
	default:
		return 0, false
	}
}

func (n *node) length(c *context) (int, error) {
	if n.shape.Kind == shape.Prefixed {
		return read.Len(c.src)
	}

	for _, name := range n.shape.Len.Names() {
		if _, ok := c.lookup(name); !ok {
			return 0, bindError(n, "%s cannot be used as array length", name)
		}
	}
	l, e := n.shape.Len.Eval(c.lookup)
	if e != nil {
		return 0, e
	}
	if l < 0 || l > math.MaxInt {
		return 0, procin.NewError(read.ErrLength, "invalid array length "+n.shape.Len.String(),
			shape.SourceName, n.shape.Line, n.shape.Col)
	}
	return int(l), nil
}

// read reads a value into dst, which must be settable.
func (n *node) read(c *context, dst reflect.Value) error {
	switch n.shape.Kind {
	case shape.Named:
		v, e := n.entry.Read(c.src)
		if e != nil {
			return e
		}
		return n.assign(dst, reflect.ValueOf(v))

	case shape.Array, shape.Prefixed:
		l, e := n.length(c)
		if e != nil {
			return e
		}
		return n.readSeq(c, dst, l)

	default:
		return n.readTuple(c, dst)
	}
}

func (n *node) readSeq(c *context, dst reflect.Value, l int) error {
	switch dst.Kind() {
	case reflect.Slice:
		if l <= maxPrealloc {
			s := reflect.MakeSlice(dst.Type(), l, l)
			for i := 0; i < l; i++ {
				if e := n.elem.read(c, s.Index(i)); e != nil {
					return e
				}
			}
			dst.Set(s)
			return nil
		}

		s := reflect.MakeSlice(dst.Type(), 0, maxPrealloc)
		item := reflect.New(dst.Type().Elem()).Elem()
		zero := reflect.Zero(item.Type())
		for i := 0; i < l; i++ {
			item.Set(zero)
			if e := n.elem.read(c, item); e != nil {
				return e
			}
			s = reflect.Append(s, item)
		}
		dst.Set(s)
		return nil

	case reflect.Array:
		if dst.Len() != l {
			return bindError(n, "cannot store %d elements to %s", l, dst.Type())
		}
		for i := 0; i < l; i++ {
			if e := n.elem.read(c, dst.Index(i)); e != nil {
				return e
			}
		}
		return nil

	case reflect.Interface:
		if dst.NumMethod() != 0 {
			break
		}
		v := reflect.New(n.typ).Elem()
		if e := n.readSeq(c, v, l); e != nil {
			return e
		}
		dst.Set(v)
		return nil
	}

	return bindError(n, "cannot store array to %s", dst.Type())
}

func (n *node) readTuple(c *context, dst reflect.Value) error {
	l := len(n.elems)
	switch dst.Kind() {
	case reflect.Struct:
		if dst.NumField() != l {
			return bindError(n, "cannot store %d-tuple to %s having %d fields", l, dst.Type(), dst.NumField())
		}
		for i := 0; i < l; i++ {
			f := dst.Field(i)
			if !f.CanSet() {
				return bindError(n, "cannot store tuple to unexported field %s of %s", dst.Type().Field(i).Name, dst.Type())
			}
			if e := n.elems[i].read(c, f); e != nil {
				return e
			}
		}
		return nil

	case reflect.Slice:
		s := reflect.MakeSlice(dst.Type(), l, l)
		for i := 0; i < l; i++ {
			if e := n.elems[i].read(c, s.Index(i)); e != nil {
				return e
			}
		}
		dst.Set(s)
		return nil

	case reflect.Array:
		if dst.Len() != l {
			return bindError(n, "cannot store %d-tuple to %s", l, dst.Type())
		}
		for i := 0; i < l; i++ {
			if e := n.elems[i].read(c, dst.Index(i)); e != nil {
				return e
			}
		}
		return nil

	case reflect.Interface:
		if dst.NumMethod() != 0 {
			break
		}
		v := reflect.New(n.typ).Elem()
		if e := n.readTuple(c, v); e != nil {
			return e
		}
		dst.Set(v)
		return nil
	}

	return bindError(n, "cannot store tuple to %s", dst.Type())
}
