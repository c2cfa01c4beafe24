// Package shape parses binding lists like
//
//	n: usize, mut m: usize, a: [[i32]; n], (i, j): (Usize1, Usize1), _: String
//
// into a tree of shapes. A shape is one of:
//   - a type name, e.g. "usize" or "proconio::marker::Chars";
//   - a fixed array "[Shape; Expr]", where Expr may refer to names bound earlier in the same list;
//   - a length-prefixed array "[Shape]", length is read from input first;
//   - a tuple "(Shape, ...)"; parentheses always denote a tuple, even with a single element.
package shape

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/ava12/procin"
)

// Error codes used by shape parser:
const (
	// ErrSyntax indicates malformed binding list.
	ErrSyntax = procin.ShapeErrors + iota

	// ErrUnknownName indicates that a length expression refers to a name not bound earlier.
	ErrUnknownName

	// ErrEval indicates length expression evaluation failure, e.g. division by zero.
	ErrEval
)

// SourceName is used as the source name in error messages.
const SourceName = "binding list"

type Kind int

const (
	Named Kind = iota
	Array
	Prefixed
	Tuple
)

// Shape describes how a value is read.
type Shape struct {
	Kind Kind

	// Name is the type name for Named shapes.
	Name string

	// Elem is the element shape for Array and Prefixed shapes.
	Elem *Shape

	// Len is the length expression for Array shapes.
	Len *Expr

	// Elems are tuple element shapes, possibly empty.
	Elems []*Shape

	Line, Col int
}

func (s *Shape) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s *Shape) write(sb *strings.Builder) {
	switch s.Kind {
	case Named:
		sb.WriteString(s.Name)
	case Array:
		sb.WriteByte('[')
		s.Elem.write(sb)
		sb.WriteString("; ")
		sb.WriteString(s.Len.String())
		sb.WriteByte(']')
	case Prefixed:
		sb.WriteByte('[')
		s.Elem.write(sb)
		sb.WriteByte(']')
	case Tuple:
		sb.WriteByte('(')
		for i, e := range s.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		if len(s.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	}
}

// Pattern is either a name (possibly "_") or a tuple of patterns.
type Pattern struct {
	Name  string
	Mut   bool
	Elems []*Pattern

	Line, Col int
}

func (p *Pattern) IsTuple() bool {
	return p.Name == ""
}

func (p *Pattern) IsDiscard() bool {
	return p.Name == "_"
}

// Names returns bound names in order, "_" excluded.
func (p *Pattern) Names() []string {
	var res []string
	p.collect(&res)
	return res
}

func (p *Pattern) collect(res *[]string) {
	if !p.IsTuple() {
		if !p.IsDiscard() {
			*res = append(*res, p.Name)
		}
		return
	}

	for _, e := range p.Elems {
		e.collect(res)
	}
}

func (p *Pattern) String() string {
	prefix := ""
	if p.Mut {
		prefix = "mut "
	}
	if !p.IsTuple() {
		return prefix + p.Name
	}

	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return prefix + "(" + strings.Join(parts, ", ") + ")"
}

// Binding is a single "pattern: shape" item of a binding list.
type Binding struct {
	Pattern *Pattern
	Shape   *Shape
}

func (b *Binding) String() string {
	return b.Pattern.String() + ": " + b.Shape.String()
}

// Group is a parsed binding list.
type Group struct {
	Bindings []*Binding

	// Vars are names that length expressions may use without binding them, see ParseVars.
	Vars []string
}

// Names returns all bound names in order.
func (g *Group) Names() []string {
	var res []string
	for _, b := range g.Bindings {
		b.Pattern.collect(&res)
	}
	return res
}

func (g *Group) String() string {
	parts := make([]string, len(g.Bindings))
	for i, b := range g.Bindings {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

// Parse parses a binding list. Empty list is valid.
// Returns nil and *procin.Error on error.
// Length expressions may refer only to names bound by preceding bindings of the same list.
func Parse(text string) (*Group, error) {
	return ParseVars(text)
}

// ParseVars is like Parse, but length expressions may also refer to vars,
// whose values are supplied when the list is read.
func ParseVars(text string, vars ...string) (*Group, error) {
	tree, e := listParser.ParseString(SourceName, text)
	if e != nil {
		return nil, syntaxError(e)
	}

	return buildGroup(tree, vars)
}

func syntaxError(e error) *procin.Error {
	if pe, ok := e.(participle.Error); ok {
		pos := pe.Position()
		return procin.NewError(ErrSyntax, pe.Message(), SourceName, pos.Line, pos.Column)
	}
	return procin.FormatError(ErrSyntax, "%s", e.Error())
}
