/*
procingen is a console utility generating readers for structs marked with //procin:derive directive.
Usage is

	procingen [-o <name>] [-p <name>] [--dump] <file>

-o <name> defines output file name, default is the name of input file with _procin.go suffix
instead of .go;

-p <name> defines Go package name, default is the package name of input file;

--dump prints parsed structs instead of writing output file;

<file> defines Go file containing struct shapes, normally guarded by "//go:build procin" constraint.

Intended usage is a go:generate line in package source:

	//go:generate procingen shapes.go
*/
package main

import (
	"os"
	"regexp"

	"github.com/alecthomas/repr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/ava12/procin"
	"github.com/ava12/procin/derive"
)

var (
	outFileName = kingpin.Flag("out", "output file name, default is the name of input file with _procin.go suffix").
			Short('o').String()
	packageName = kingpin.Flag("package", "Go package name, default is the package name of input file").
			Short('p').String()
	dump       = kingpin.Flag("dump", "print parsed structs instead of generating code").Bool()
	inFileName = kingpin.Arg("file", "Go file with struct shapes").Required().String()
)

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func main() {
	kingpin.Parse()

	if *outFileName == "" {
		*outFileName = derive.OutputName(*inFileName)
	}

	var plan *derive.Plan
	src, e := os.ReadFile(*inFileName)
	if e == nil {
		plan, e = derive.Parse(*inFileName, src)
	}
	if e == nil && *packageName != "" {
		if !identRe.MatchString(*packageName) {
			e = procin.FormatError(derive.ErrArgument, "invalid package name: %s", *packageName)
		}
		plan.Package = *packageName
	}

	if e == nil && *dump {
		repr.Println(plan)
		return
	}

	var content []byte
	if e == nil {
		content, e = derive.Generate(plan, *outFileName)
	}
	if e == nil {
		e = os.WriteFile(*outFileName, content, 0o666)
	}

	kingpin.FatalIfError(e, "")
}
