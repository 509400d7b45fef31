// Package fixture contains test data for property resolution.
//
// Every fixture exposes faa, foo and fuu through a different access convention.
package fixture

// Bean exposes properties with getter methods.
type Bean struct{}

// GetFaa returns 3.
func (Bean) GetFaa() int { return 3 }

// GetFoo returns 5.
func (Bean) GetFoo() int { return 5 }

// GetFuu returns 8.
func (Bean) GetFuu() int { return 8 }

// ScalaNaming exposes properties with bare methods named after them.
type ScalaNaming struct{}

// Faa returns 3.
func (ScalaNaming) Faa() int { return 3 }

// Foo returns 5.
func (ScalaNaming) Foo() int { return 5 }

// Fuu returns 8.
func (ScalaNaming) Fuu() int { return 8 }

// Fields exposes properties as exported fields.
type Fields struct {
	Faa int
	Foo int
	Fuu int
}

// NewFields creates Fields with faa, foo and fuu set to 3, 5 and 8.
func NewFields() Fields {
	return Fields{Faa: 3, Foo: 5, Fuu: 8}
}

// Disambiguation exposes foo as a field, a getter and a bare method at once.
//
// A Go field can not share its identifier with a method, so the field claims
// the name with a tag.
type Disambiguation struct {
	FooField string `tinyplate:"foo"`
}

// NewDisambiguation creates Disambiguation with a field-sourced foo.
func NewDisambiguation() Disambiguation {
	return Disambiguation{FooField: "field"}
}

// GetFoo returns bean property.
func (Disambiguation) GetFoo() string { return "bean property" }

// Foo returns Scala-style method.
func (Disambiguation) Foo() string { return "Scala-style method" }
