// Package derive generates Reader implementations for struct types.
//
// Input is a Go file describing input shapes of structs marked with the //procin:derive directive:
//
//	//go:build procin
//
//	package graph
//
//	import "github.com/ava12/procin/read"
//
//	// Edge is a weighted edge.
//	//procin:derive
//	type Edge struct {
//		From, To read.Usize1
//		W        int64
//	}
//
// Output file declares the same structs with field types replaced by output types (uint instead of
// read.Usize1 above), ReadTokens methods reading fields in declaration order, and registrations
// making the structs available to binding lists as "graph.Edge" and "Edge".
//
// Field shapes are Go scalars (read as is; rune reads a single character), read package markers
// (Usize1, Isize1, Char, Chars, Bytes, String, Bool, Big, Int[T], Uint[T], Float[T]), fixed arrays [N]S,
// length-prefixed slices []S, and other types implementing read.Readable.
package derive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ava12/procin"
)

// Error codes used by derive:
const (
	// ErrNotStruct indicates that the directive is attached to something other than a struct type.
	ErrNotStruct = procin.DeriveErrors + iota

	// ErrArgument indicates that the directive has arguments. No arguments are recognized.
	ErrArgument

	// ErrFieldType indicates unsupported field type.
	ErrFieldType

	// ErrGenerate indicates malformed input file or failure to format generated code.
	ErrGenerate
)

// Directive marks structs to generate readers for. Must be a separate line in the doc comment.
const Directive = "//procin:derive"

const (
	readPath   = "github.com/ava12/procin/read"
	sourcePath = "github.com/ava12/procin/source"
)

// Kind is a field shape category.
type Kind int

const (
	Scalar Kind = iota
	Marker
	Fixed
	Prefixed
	Aggregate
)

// Type describes a field shape.
type Type struct {
	Kind Kind

	// Output is the Go type of the generated field.
	Output string

	// Reader is a Go expression of type read.Reader[Output].
	Reader string

	// Len is the length expression of Fixed arrays.
	Len string

	// Elem is the element shape of Fixed and Prefixed arrays.
	Elem *Type
}

// Field describes one field declaration, possibly declaring several names.
type Field struct {
	// Names are declared names, nil for embedded fields.
	Names []string

	// Embedded is the name of embedded field, empty for named fields.
	Embedded string

	Type    *Type
	Tag     string
	Doc     []string
	Comment []string
}

// Struct describes a struct to generate.
type Struct struct {
	Name      string
	Doc       []string
	Fields    []*Field
	Line, Col int
}

// Import is a copied import of the input file.
type Import struct {
	Name, Path string
}

// Plan is a parsed input file.
type Plan struct {
	FileName string
	Package  string
	Imports  []Import
	Structs  []*Struct
}

// OutputName returns default output file name for input file name: "shapes.go" becomes "shapes_procin.go".
func OutputName(inFileName string) string {
	ext := filepath.Ext(inFileName)
	return inFileName[:len(inFileName)-len(ext)] + "_procin.go"
}

type parseState struct {
	fset     *token.FileSet
	plan     *Plan
	readName string
}

// Parse parses Go source and collects structs marked with Directive.
// Returns *procin.Error on error.
func Parse(fileName string, src []byte) (*Plan, error) {
	fset := token.NewFileSet()
	f, e := parser.ParseFile(fset, fileName, src, parser.ParseComments)
	if e != nil {
		return nil, syntaxError(e)
	}

	p := &parseState{
		fset: fset,
		plan: &Plan{FileName: fileName, Package: f.Name.Name},
	}
	for _, imp := range f.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		}
		switch path {
		case readPath:
			p.readName = "read"
			if name != "" {
				p.readName = name
			}
		case sourcePath:
		default:
			p.plan.Imports = append(p.plan.Imports, Import{name, path})
		}
	}

	for _, decl := range f.Decls {
		if e = p.parseDecl(decl); e != nil {
			return nil, e
		}
	}
	return p.plan, nil
}

func syntaxError(e error) *procin.Error {
	if list, ok := e.(scanner.ErrorList); ok && len(list) > 0 {
		pos := list[0].Pos
		return procin.NewError(ErrGenerate, list[0].Msg, pos.Filename, pos.Line, pos.Column)
	}
	return procin.FormatError(ErrGenerate, e.Error())
}

func (p *parseState) errorAt(pos token.Pos, code int, msg string, params ...any) *procin.Error {
	position := p.fset.Position(pos)
	return procin.NewError(code, fmt.Sprintf(msg, params...), position.Filename, position.Line, position.Column)
}

func (p *parseState) directive(doc *ast.CommentGroup) (bool, error) {
	if doc == nil {
		return false, nil
	}

	for _, c := range doc.List {
		if c.Text == Directive {
			return true, nil
		}
		if strings.HasPrefix(c.Text, Directive) {
			rest := c.Text[len(Directive):]
			if rest[0] == ' ' || rest[0] == '\t' {
				return false, p.errorAt(c.Pos(), ErrArgument, "unexpected arguments %q", strings.TrimSpace(rest))
			}
		}
	}
	return false, nil
}

func commentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var res []string
	for _, c := range doc.List {
		if c.Text != Directive {
			res = append(res, c.Text)
		}
	}
	for len(res) > 0 && res[len(res)-1] == "//" {
		res = res[:len(res)-1]
	}
	return res
}

func (p *parseState) parseDecl(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		found, e := p.directive(d.Doc)
		if e == nil && found {
			e = p.errorAt(d.Name.Pos(), ErrNotStruct, "%s is not a struct type", d.Name.Name)
		}
		return e

	case *ast.GenDecl:
		groupFound, e := p.directive(d.Doc)
		if e != nil {
			return e
		}
		if d.Tok != token.TYPE {
			if groupFound {
				e = p.errorAt(d.Pos(), ErrNotStruct, "%s declaration is not a struct type", d.Tok)
			}
			return e
		}

		for _, spec := range d.Specs {
			ts := spec.(*ast.TypeSpec)
			found := groupFound
			doc := d.Doc
			if d.Lparen.IsValid() {
				doc = ts.Doc
				f, e := p.directive(doc)
				if e != nil {
					return e
				}
				found = found || f
			}
			if found {
				if e = p.parseStruct(ts, doc); e != nil {
					return e
				}
			}
		}
	}
	return nil
}

func (p *parseState) parseStruct(ts *ast.TypeSpec, doc *ast.CommentGroup) error {
	st, ok := ts.Type.(*ast.StructType)
	if !ok || ts.Assign.IsValid() {
		return p.errorAt(ts.Name.Pos(), ErrNotStruct, "%s is not a struct type", ts.Name.Name)
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return p.errorAt(ts.Name.Pos(), ErrFieldType, "generic struct %s is not supported", ts.Name.Name)
	}

	position := p.fset.Position(ts.Name.Pos())
	s := &Struct{
		Name: ts.Name.Name,
		Doc:  commentLines(doc),
		Line: position.Line,
		Col:  position.Column,
	}
	for _, af := range st.Fields.List {
		f, e := p.parseField(af)
		if e != nil {
			return e
		}
		s.Fields = append(s.Fields, f)
	}
	p.plan.Structs = append(p.plan.Structs, s)
	return nil
}

func (p *parseState) parseField(af *ast.Field) (*Field, error) {
	t, e := p.parseType(af.Type)
	if e != nil {
		return nil, e
	}

	f := &Field{
		Type:    t,
		Doc:     commentLines(af.Doc),
		Comment: commentLines(af.Comment),
	}
	if af.Tag != nil {
		f.Tag = af.Tag.Value
	}
	for _, name := range af.Names {
		f.Names = append(f.Names, name.Name)
	}

	if len(af.Names) == 0 {
		if t.Kind != Aggregate {
			return nil, p.errorAt(af.Type.Pos(), ErrFieldType, "embedded field %s must have a type implementing read.Readable", t.Output)
		}
		f.Embedded = t.Output
		if i := strings.LastIndexByte(f.Embedded, '.'); i >= 0 {
			f.Embedded = f.Embedded[i+1:]
		}
	}
	return f, nil
}

var scalars = map[string]string{
	"int":     "read.Int[int]{}",
	"int8":    "read.Int[int8]{}",
	"int16":   "read.Int[int16]{}",
	"int32":   "read.Int[int32]{}",
	"int64":   "read.Int[int64]{}",
	"uint":    "read.Uint[uint]{}",
	"uint8":   "read.Uint[uint8]{}",
	"uint16":  "read.Uint[uint16]{}",
	"uint32":  "read.Uint[uint32]{}",
	"uint64":  "read.Uint[uint64]{}",
	"byte":    "read.Uint[byte]{}",
	"rune":    "read.Char{}",
	"float32": "read.Float[float32]{}",
	"float64": "read.Float[float64]{}",
	"bool":    "read.Bool{}",
	"string":  "read.String{}",
}

// predeclared types having no reader
var unreadable = map[string]bool{
	"any":        true,
	"complex64":  true,
	"complex128": true,
	"error":      true,
	"uintptr":    true,
}

var markers = map[string]string{
	"Usize1": "uint",
	"Isize1": "int",
	"Char":   "rune",
	"Chars":  "[]rune",
	"Bytes":  "[]byte",
	"String": "string",
	"Bool":   "bool",
	"Big":    "*big.Int",
}

var generics = map[string]string{
	"Int":   "int int8 int16 int32 int64",
	"Uint":  "uint uint8 uint16 uint32 uint64 byte",
	"Float": "float32 float64",
}

func (p *parseState) parseType(expr ast.Expr) (*Type, error) {
	switch x := expr.(type) {
	case *ast.ParenExpr:
		return p.parseType(x.X)

	case *ast.Ident:
		if r, found := scalars[x.Name]; found {
			return &Type{Kind: Scalar, Output: x.Name, Reader: r}, nil
		}
		if unreadable[x.Name] {
			return nil, p.errorAt(x.Pos(), ErrFieldType, "field type %s is not supported", x.Name)
		}
		return aggregate(x.Name), nil

	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			break
		}
		if pkg.Name != p.readName {
			return aggregate(pkg.Name + "." + x.Sel.Name), nil
		}
		output, found := markers[x.Sel.Name]
		if !found {
			return nil, p.errorAt(x.Pos(), ErrFieldType, "read.%s cannot be used as field type", x.Sel.Name)
		}
		return &Type{Kind: Marker, Output: output, Reader: "read." + x.Sel.Name + "{}"}, nil

	case *ast.IndexExpr:
		return p.parseGeneric(x)

	case *ast.ArrayType:
		if _, ok := x.Len.(*ast.Ellipsis); ok {
			break
		}
		elem, e := p.parseType(x.Elt)
		if e != nil {
			return nil, e
		}

		if x.Len == nil {
			return &Type{
				Kind:   Prefixed,
				Output: "[]" + elem.Output,
				Reader: "read.Prefixed[" + elem.Output + "]{Elem: " + elem.Reader + "}",
				Elem:   elem,
			}, nil
		}

		l := types.ExprString(x.Len)
		output := "[" + l + "]" + elem.Output
		return &Type{
			Kind:   Fixed,
			Output: output,
			Reader: "read.Func[" + output + "](func(s source.Source) (res " + output + ", e error) {\n" +
				"for i := range res {\n" +
				"if res[i], e = (" + elem.Reader + ").Read(s); e != nil {\nreturn\n}\n" +
				"}\nreturn\n})",
			Len:  l,
			Elem: elem,
		}, nil
	}

	return nil, p.errorAt(expr.Pos(), ErrFieldType, "field type %s is not supported", types.ExprString(expr))
}

func (p *parseState) parseGeneric(x *ast.IndexExpr) (*Type, error) {
	sel, ok := x.X.(*ast.SelectorExpr)
	var arg *ast.Ident
	if ok {
		arg, ok = x.Index.(*ast.Ident)
	}
	if ok {
		pkg, isIdent := sel.X.(*ast.Ident)
		ok = isIdent && pkg.Name == p.readName
	}
	if ok {
		allowed := strings.Fields(generics[sel.Sel.Name])
		for _, name := range allowed {
			if name == arg.Name {
				return &Type{Kind: Marker, Output: arg.Name, Reader: "read." + sel.Sel.Name + "[" + arg.Name + "]{}"}, nil
			}
		}
	}

	return nil, p.errorAt(x.Pos(), ErrFieldType, "field type %s is not supported", types.ExprString(x))
}

func aggregate(name string) *Type {
	return &Type{Kind: Aggregate, Output: name, Reader: "read.Of[" + name + "]()"}
}
