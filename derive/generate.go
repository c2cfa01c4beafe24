package derive

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/ava12/procin"
)

// Header is the first line of generated files.
const Header = "// Code generated by procingen. DO NOT EDIT."

// Generate creates formatted Go source for plan.
// fileName is the output file name, used for error messages only.
// Returns *procin.Error on error.
func Generate(plan *Plan, fileName string) ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteString(Header + "\n\n//go:build !procin\n\npackage " + plan.Package + "\n\nimport (\n")
	for _, imp := range plan.Imports {
		buffer.WriteString("\t")
		if imp.Name != "" {
			buffer.WriteString(imp.Name + " ")
		}
		buffer.WriteString(strconv.Quote(imp.Path) + "\n")
	}
	buffer.WriteString("\t\"math/big\"\n\n" +
		"\t\"" + readPath + "\"\n" +
		"\t\"" + sourcePath + "\"\n)\n")

	for _, s := range plan.Structs {
		writeStruct(&buffer, s)
		writeMethod(&buffer, s)
	}

	if len(plan.Structs) > 0 {
		buffer.WriteString("\nfunc init() {\n")
		for _, s := range plan.Structs {
			buffer.WriteString("\tread.Register(" + strconv.Quote(plan.Package+"."+s.Name) + ", read.Of[" + s.Name + "]())\n")
		}
		buffer.WriteString("}\n")
	}

	res, e := imports.Process(fileName, buffer.Bytes(), nil)
	if e != nil {
		return nil, procin.FormatError(ErrGenerate, "failed to format generated code: %s", e.Error())
	}
	return res, nil
}

func writeLines(buffer *bytes.Buffer, indent string, lines []string) {
	for _, l := range lines {
		buffer.WriteString(indent + l + "\n")
	}
}

func writeStruct(buffer *bytes.Buffer, s *Struct) {
	buffer.WriteString("\n")
	writeLines(buffer, "", s.Doc)
	buffer.WriteString("type " + s.Name + " struct {\n")
	for _, f := range s.Fields {
		writeLines(buffer, "\t", f.Doc)
		buffer.WriteString("\t")
		if f.Embedded == "" {
			buffer.WriteString(strings.Join(f.Names, ", ") + " ")
		}
		buffer.WriteString(f.Type.Output)
		if f.Tag != "" {
			buffer.WriteString(" " + f.Tag)
		}
		if len(f.Comment) > 0 {
			buffer.WriteString(" " + strings.Join(f.Comment, " "))
		}
		buffer.WriteString("\n")
	}
	buffer.WriteString("}\n")
}

func writeMethod(buffer *bytes.Buffer, s *Struct) {
	buffer.WriteString("\nfunc (v *" + s.Name + ") ReadTokens(s source.Source) (e error) {\n" +
		"\tvar res " + s.Name + "\n")
	for _, f := range s.Fields {
		targets := f.Names
		if f.Embedded != "" {
			targets = []string{f.Embedded}
		}
		for _, name := range targets {
			if name != "_" {
				name = "res." + name
			}
			buffer.WriteString("\tif " + name + ", e = (" + f.Type.Reader + ").Read(s); e != nil {\n\t\treturn\n\t}\n")
		}
	}
	buffer.WriteString("\t*v = res\n\treturn\n}\n")
}
