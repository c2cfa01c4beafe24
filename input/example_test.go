package input_test

import (
	"fmt"

	"github.com/ava12/procin/input"
	"github.com/ava12/procin/source"
)

func ExampleScan() {
	src := source.OnceString("example", "3 4\n1 2\n2 3\n3 1\n1 3\n")
	var n, m int
	var edges [][2]int
	if e := input.Scan(src, "n: usize, m: usize, edges: [(Usize1, Usize1); m]", &n, &m, &edges); e != nil {
		fmt.Println(e)
		return
	}

	degree := make([]int, n)
	for _, edge := range edges {
		degree[edge[0]]++
		degree[edge[1]]++
	}
	fmt.Println(degree)

	// Output:
	// [3 2 3]
}

func ExampleGroup_Read() {
	g := input.MustCompile("name: String, (x, y): (i32, i32)")
	d, e := g.Read(source.OnceString("example", "origin 0 -1"))
	if e != nil {
		fmt.Println(e)
		return
	}

	for _, key := range d.Keys() {
		v, _ := d.Get(key)
		fmt.Printf("%s: %v\n", key, v)
	}

	// Output:
	// name: origin
	// x: 0
	// y: -1
}

func ExampleScan_error() {
	var n uint8
	e := input.Scan(source.OnceString("example", "\n  256"), "n: u8", &n)
	fmt.Println(e)

	// Output:
	// failed to parse "256" as uint8: value out of range in example at line 2 col 3
}
