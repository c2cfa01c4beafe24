/*
procin is a console utility reading input by a binding list and printing the values read.
Usage is

	procin [-f <name>] [-m auto|once|line] [-r] <list>

-f <name> defines input file name, default is standard input;

-m <mode> defines source kind: "once" reads entire input first, "line" reads it line by line,
"auto" (default) uses PROCIN_SOURCE environment variable or picks one depending on input;

-r reads the list repeatedly until input is exhausted;

<list> is a binding list, e.g. "n: usize, a: [i32; n]".

Example:

	echo "3 1 2 3" | procin "n: usize, a: [i32; n]"
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/ava12/procin/input"
	"github.com/ava12/procin/source"
)

var (
	inFileName = kingpin.Flag("file", "input file name, default is standard input").Short('f').String()
	mode       = kingpin.Flag("mode", "source kind").Short('m').Default("auto").Enum("auto", "once", "line")
	repeat     = kingpin.Flag("repeat", "read the list repeatedly until input is exhausted").Short('r').Bool()
	list       = kingpin.Arg("list", "binding list").Required().String()
)

func open() (source.Source, error) {
	var r io.Reader = os.Stdin
	name := "stdin"
	if *inFileName != "" {
		f, e := os.Open(*inFileName)
		if e != nil {
			return nil, e
		}
		r = f
		name = *inFileName
	}

	switch *mode {
	case "once":
		return source.NewOnce(name, r)
	case "line":
		return source.NewLine(name, r), nil
	default:
		return source.NewAuto(name, r)
	}
}

func main() {
	kingpin.Parse()

	g, e := input.Compile(*list)
	kingpin.FatalIfError(e, "")
	src, e := open()
	kingpin.FatalIfError(e, "")

	for {
		values, e := g.Read(src)
		kingpin.FatalIfError(e, "")
		for _, key := range values.Keys() {
			v, _ := values.Get(key)
			fmt.Printf("%s: %s\n", key, repr.String(v))
		}

		if !*repeat {
			break
		}
		empty, e := src.IsEmpty()
		kingpin.FatalIfError(e, "")
		if empty {
			break
		}
	}
}
