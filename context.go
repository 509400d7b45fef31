package tinyplate

import (
	"reflect"
)

// DefaultPropertyNameTag is a field tag that overrides property name.
const DefaultPropertyNameTag = "tinyplate"

// AccessKind identifies how property value is read from a struct.
type AccessKind int

// Access kinds.
const (
	// Field reads exported struct field.
	Field AccessKind = iota + 1
	// Getter calls Get<Name> method.
	Getter
	// Method calls <Name> method.
	Method
)

// String returns kind name.
func (k AccessKind) String() string {
	switch k {
	case Field:
		return "field"
	case Getter:
		return "getter"
	case Method:
		return "method"
	default:
		return "unknown"
	}
}

// DefaultPriority is the order of access kinds when several match one name.
func DefaultPriority() []AccessKind {
	return []AccessKind{Field, Getter, Method}
}

// PropertyNameTag sets up which field tag to use for property name, default "tinyplate".
func PropertyNameTag(tag string) func(*ResolveContext) {
	return func(rc *ResolveContext) {
		rc.PropertyNameTag = tag
	}
}

// Priority sets up order of access kinds, default Field, Getter, Method.
//
// Kinds that are not listed are not used.
func Priority(kinds ...AccessKind) func(*ResolveContext) {
	return func(rc *ResolveContext) {
		rc.Priority = append([]AccessKind{}, kinds...)
	}
}

// InterceptPropertyFunc can intercept property resolution to observe, replace or skip value.
//
// Returning ErrSkipProperty drops the candidate, next access kind is tried.
type InterceptPropertyFunc func(name string, kind AccessKind, value reflect.Value) (reflect.Value, error)

// InterceptProperty adds hook to customize resolved property.
func InterceptProperty(f InterceptPropertyFunc) func(*ResolveContext) {
	return func(rc *ResolveContext) {
		if rc.InterceptProperty != nil {
			prev := rc.InterceptProperty
			rc.InterceptProperty = func(name string, kind AccessKind, value reflect.Value) (reflect.Value, error) {
				v, err := prev(name, kind, value)
				if err != nil {
					return v, err
				}

				return f(name, kind, v)
			}
		} else {
			rc.InterceptProperty = f
		}
	}
}

// ResolveContext accompanies single resolve operation.
type ResolveContext struct {
	PropertyNameTag   string
	Priority          []AccessKind
	InterceptProperty InterceptPropertyFunc

	Path []string
}

func newResolveContext(defaults []func(*ResolveContext), options []func(*ResolveContext)) *ResolveContext {
	rc := &ResolveContext{
		PropertyNameTag: DefaultPropertyNameTag,
		Priority:        DefaultPriority(),
	}

	for _, option := range defaults {
		option(rc)
	}

	for _, option := range options {
		option(rc)
	}

	return rc
}
