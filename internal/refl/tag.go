// Package refl provides struct field helpers for property resolution.
package refl

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Exported upper-cases first letter of name.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// Unexported lower-cases first letter of name.
func Unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}

// PropertyName returns property name of a struct field.
//
// Tag value up to the first comma is used when present, otherwise field name
// with lower-cased first letter. Empty result means the field is hidden.
func PropertyName(field reflect.StructField, tagname string) string {
	if field.PkgPath != "" && !field.Anonymous {
		return ""
	}

	tag, ok := field.Tag.Lookup(tagname)
	if ok {
		if pos := strings.Index(tag, ","); pos != -1 {
			tag = tag[:pos]
		}

		if tag == "-" {
			return ""
		}

		if tag != "" {
			return tag
		}
	}

	return Unexported(field.Name)
}

// FieldByProperty finds index of a field that exposes named property.
//
// Fields of embedded structs are promoted, outer fields win.
func FieldByProperty(t reflect.Type, name, tagname string) ([]int, bool) {
	return fieldByProperty(t, name, tagname, map[reflect.Type]bool{})
}

func fieldByProperty(t reflect.Type, name, tagname string, visited map[reflect.Type]bool) ([]int, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || visited[t] {
		return nil, false
	}

	visited[t] = true

	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			if tag := field.Tag.Get(tagname); tag == "" {
				embedded = append(embedded, field)

				continue
			}
		}

		if PropertyName(field, tagname) == name {
			return field.Index, true
		}
	}

	for _, field := range embedded {
		if idx, ok := fieldByProperty(field.Type, name, tagname, visited); ok {
			return append(append([]int{}, field.Index...), idx...), true
		}
	}

	return nil, false
}

// FieldProperties lists property names exposed by struct fields with their indexes.
func FieldProperties(t reflect.Type, tagname string) map[string][]int {
	res := map[string][]int{}

	collectFieldProperties(t, tagname, nil, res, map[reflect.Type]bool{})

	return res
}

func collectFieldProperties(t reflect.Type, tagname string, prefix []int, res map[string][]int, visited map[reflect.Type]bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || visited[t] {
		return
	}

	visited[t] = true

	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous && field.Tag.Get(tagname) == "" {
			embedded = append(embedded, field)

			continue
		}

		name := PropertyName(field, tagname)
		if name == "" {
			continue
		}

		if _, ok := res[name]; !ok {
			res[name] = append(append([]int{}, prefix...), field.Index...)
		}
	}

	for _, field := range embedded {
		collectFieldProperties(field.Type, tagname, append(append([]int{}, prefix...), field.Index...), res, visited)
	}
}

// HasNilEmbedded checks if method of struct value v is promoted through a nil
// embedded pointer or interface.
//
// Only the shallowest embedded fields that provide the method are followed.
// A struct is assumed to declare the method itself when none of its embedded
// fields provide it.
func HasNilEmbedded(v reflect.Value, method string) bool {
	return hasNilEmbedded(v, method, map[reflect.Type]bool{})
}

func hasNilEmbedded(v reflect.Value, method string, visited map[reflect.Type]bool) bool {
	if v.Kind() != reflect.Struct || visited[v.Type()] {
		return false
	}

	t := v.Type()
	visited[t] = true

	providers, _ := methodProviders(t, method, map[reflect.Type]bool{t: true})

	for _, i := range providers {
		fv := v.Field(i)

		switch fv.Kind() { //nolint:exhaustive // Values are walked as is.
		case reflect.Interface:
			if fv.IsNil() {
				return true
			}

			continue
		case reflect.Ptr:
			if fv.IsNil() {
				return true
			}

			fv = fv.Elem()
		}

		if hasNilEmbedded(fv, method, visited) {
			return true
		}
	}

	return false
}

// methodProviders returns indexes of embedded fields that promote method
// at the shallowest depth, negative depth means no field does.
func methodProviders(t reflect.Type, method string, seen map[reflect.Type]bool) ([]int, int) {
	var providers []int

	depth := -1

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}

		d := 0

		if field.Type.Kind() == reflect.Interface {
			if _, ok := field.Type.MethodByName(method); !ok {
				continue
			}
		} else {
			pt := field.Type
			if pt.Kind() != reflect.Ptr {
				pt = reflect.PtrTo(pt)
			}

			et := pt.Elem()

			if _, ok := pt.MethodByName(method); !ok || seen[et] {
				continue
			}

			if et.Kind() == reflect.Struct {
				seen[et] = true

				if _, sub := methodProviders(et, method, seen); sub >= 0 {
					d = sub + 1
				}

				delete(seen, et)
			}
		}

		switch {
		case depth < 0 || d < depth:
			providers, depth = []int{i}, d
		case d == depth:
			providers = append(providers, i)
		}
	}

	return providers, depth
}
