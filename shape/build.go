package shape

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ava12/procin"
)

type position struct {
	pos lexer.Position
}

func (p position) SourceName() string {
	return SourceName
}

func (p position) Line() int {
	return p.pos.Line
}

func (p position) Col() int {
	return p.pos.Column
}

func missingCommaError(p lexer.Position, what string) *procin.Error {
	return procin.FormatErrorPos(position{p}, ErrSyntax, "expecting \",\" before %s", what)
}

func unknownNameError(x *Expr) *procin.Error {
	return procin.NewError(ErrUnknownName, "length refers to unknown name "+x.Name, SourceName, x.Line, x.Col)
}

func buildGroup(tree *listNode, vars []string) (*Group, error) {
	g := &Group{Bindings: make([]*Binding, 0, len(tree.Bindings)), Vars: vars}
	bound := map[string]bool{}
	for _, name := range vars {
		bound[name] = true
	}
	for i, bn := range tree.Bindings {
		if i > 0 && !tree.Bindings[i-1].Comma {
			return nil, missingCommaError(bn.Pos, "binding")
		}

		p, e := buildPattern(bn.Pattern, bn.Mut)
		if e != nil {
			return nil, e
		}
		s, e := buildShape(bn.Shape)
		if e != nil {
			return nil, e
		}
		if e = checkNames(s, bound); e != nil {
			return nil, e
		}

		for _, name := range p.Names() {
			bound[name] = true
		}
		g.Bindings = append(g.Bindings, &Binding{p, s})
	}
	return g, nil
}

func buildPattern(n *patternNode, mut bool) (*Pattern, error) {
	p := &Pattern{Mut: mut, Line: n.Pos.Line, Col: n.Pos.Column}
	if n.Name != nil {
		p.Name = *n.Name
		return p, nil
	}

	if len(n.Tuple.Elems) == 0 {
		return nil, procin.FormatErrorPos(position{n.Pos}, ErrSyntax, "empty pattern")
	}
	for i, en := range n.Tuple.Elems {
		if i > 0 && !n.Tuple.Elems[i-1].Comma {
			return nil, missingCommaError(en.Pos, "pattern")
		}
		ep, e := buildPattern(en.Pattern, en.Mut)
		if e != nil {
			return nil, e
		}
		p.Elems = append(p.Elems, ep)
	}
	return p, nil
}

func buildShape(n *shapeNode) (*Shape, error) {
	s := &Shape{Line: n.Pos.Line, Col: n.Pos.Column}
	switch {
	case n.Array != nil:
		elem, e := buildShape(n.Array.Elem)
		if e != nil {
			return nil, e
		}
		s.Elem = elem
		if n.Array.Len == nil {
			s.Kind = Prefixed
		} else {
			s.Kind = Array
			s.Len = buildExpr(n.Array.Len)
		}

	case n.Tuple != nil:
		s.Kind = Tuple
		s.Elems = make([]*Shape, 0, len(n.Tuple.Elems))
		for i, en := range n.Tuple.Elems {
			if i > 0 && !n.Tuple.Elems[i-1].Comma {
				return nil, missingCommaError(en.Pos, "tuple element")
			}
			elem, e := buildShape(en.Shape)
			if e != nil {
				return nil, e
			}
			s.Elems = append(s.Elems, elem)
		}

	default:
		s.Kind = Named
		s.Name = strings.Join(n.Path.Parts, ".")
	}
	return s, nil
}

func checkNames(s *Shape, bound map[string]bool) error {
	switch s.Kind {
	case Array:
		if e := s.Len.walk(func(x *Expr) error {
			if x.Op == 0 && x.Name != "" && !bound[x.Name] {
				return unknownNameError(x)
			}
			return nil
		}); e != nil {
			return e
		}
		return checkNames(s.Elem, bound)

	case Prefixed:
		return checkNames(s.Elem, bound)

	case Tuple:
		for _, elem := range s.Elems {
			if e := checkNames(elem, bound); e != nil {
				return e
			}
		}
	}
	return nil
}

func buildExpr(n *exprNode) *Expr {
	x := buildTerm(n.Left)
	for _, r := range n.Rest {
		x = &Expr{Op: r.Op[0], Left: x, Right: buildTerm(r.Term), Line: r.Pos.Line, Col: r.Pos.Column}
	}
	return x
}

func buildTerm(n *termNode) *Expr {
	x := buildUnary(n.Left)
	for _, r := range n.Rest {
		x = &Expr{Op: r.Op[0], Left: x, Right: buildUnary(r.Unary), Line: r.Pos.Line, Col: r.Pos.Column}
	}
	return x
}

func buildUnary(n *unaryNode) *Expr {
	switch {
	case n.Neg != nil:
		return &Expr{Op: OpNeg, Left: buildUnary(n.Neg), Line: n.Pos.Line, Col: n.Pos.Column}
	case n.Num != nil:
		return &Expr{Num: *n.Num, Line: n.Pos.Line, Col: n.Pos.Column}
	case n.Name != nil:
		return &Expr{Name: *n.Name, Line: n.Pos.Line, Col: n.Pos.Column}
	default:
		return buildExpr(n.Group)
	}
}
