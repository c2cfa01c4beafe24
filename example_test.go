package procin_test

import (
	"fmt"

	"github.com/ava12/procin/input"
	"github.com/ava12/procin/read"
	"github.com/ava12/procin/source"
)

type point struct {
	X, Y int
}

func (p *point) ReadTokens(s source.Source) (e error) {
	if p.X, e = (read.Int[int]{}).Read(s); e == nil {
		p.Y, e = read.Int[int]{}.Read(s)
	}
	return
}

func init() {
	read.Register("example.Point", read.Of[point]())
}

func Example() {
	src := source.OnceString("input", `
3
0 0
3 4
-1 2
abc
`)

	var (
		n      int
		points []point
		word   []rune
	)
	e := input.Scan(src, "n: usize, points: [Point; n], word: Chars", &n, &points, &word)
	if e != nil {
		fmt.Println(e)
		return
	}
	fmt.Println(points, string(word))

	e = input.Scan(src, "extra: u8", &n)
	fmt.Println(e)

	// Output:
	// [{0 0} {3 4} {-1 2}] abc
	// failed to get the next token: reached the end of input; ensure that the binding list matches the input format
}
