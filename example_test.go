package tinyplate_test

import (
	"fmt"

	"github.com/tinyplate/tinyplate"
	"github.com/tinyplate/tinyplate/fixture"
)

func ExampleResolve() {
	d := fixture.NewDisambiguation()

	for _, kind := range tinyplate.DefaultPriority() {
		v, err := tinyplate.Resolve(d, "foo", tinyplate.Priority(kind))
		if err != nil {
			panic(err)
		}

		fmt.Printf("%s: %v\n", kind, v)
	}

	// Output:
	// field: field
	// getter: bean property
	// method: Scala-style method
}

func ExampleRender() {
	s, err := tinyplate.Render(`{{ . | prop "faa" }}+{{ . | prop "foo" }}={{ . | prop "fuu" }}`, fixture.Bean{})
	if err != nil {
		panic(err)
	}

	fmt.Println(s)

	// Output:
	// 3+5=8
}
