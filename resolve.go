// Package tinyplate resolves named properties of Go values and renders templates with them.
package tinyplate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/swaggest/refl"
	irefl "github.com/tinyplate/tinyplate/internal/refl"
)

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

const (
	// ErrNoProperty indicates that value does not expose requested property.
	ErrNoProperty = sentinelError("no such property")

	// ErrNilValue indicates that property is requested from nil.
	ErrNilValue = sentinelError("nil value")

	// ErrSkipProperty can be returned by InterceptPropertyFunc to drop a candidate.
	ErrSkipProperty = sentinelError("property skipped")
)

type sentinelError string

func (e sentinelError) Error() string {
	return string(e)
}

// Resolver reads named properties from Go values.
//
// Zero value is ready to use.
type Resolver struct {
	DefaultOptions []func(*ResolveContext)
}

var defaultResolver Resolver

// Resolve returns property value with default Resolver.
func Resolve(v interface{}, name string, options ...func(*ResolveContext)) (interface{}, error) {
	return defaultResolver.Resolve(v, name, options...)
}

// Lookup returns value at dot-separated path with default Resolver.
func Lookup(v interface{}, path string, options ...func(*ResolveContext)) (interface{}, error) {
	return defaultResolver.Lookup(v, path, options...)
}

// Properties lists properties with default Resolver.
func Properties(v interface{}, options ...func(*ResolveContext)) (map[string]interface{}, error) {
	return defaultResolver.Properties(v, options...)
}

// Resolve returns value of a single property.
//
// Struct properties are searched by access kinds in ResolveContext.Priority order,
// first match wins.
func (r *Resolver) Resolve(v interface{}, name string, options ...func(*ResolveContext)) (interface{}, error) {
	rc := newResolveContext(r.DefaultOptions, options)

	rv, err := r.resolve(reflect.ValueOf(v), name, rc)
	if err != nil {
		return nil, err
	}

	return rv.Interface(), nil
}

// Lookup walks dot-separated path of properties, empty path returns v.
func (r *Resolver) Lookup(v interface{}, path string, options ...func(*ResolveContext)) (interface{}, error) {
	if path == "" {
		return v, nil
	}

	rc := newResolveContext(r.DefaultOptions, options)
	rv := reflect.ValueOf(v)

	for _, name := range strings.Split(path, ".") {
		rc.Path = append(rc.Path, name)

		var err error

		rv, err = r.resolve(rv, name, rc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(rc.Path, "."), err)
		}
	}

	return rv.Interface(), nil
}

// Properties lists all properties that can be resolved from v.
//
// Methods with Get prefix are listed as getters only. Every exported method
// without arguments that returns a value is called, so listing has the side
// effects of those methods. Methods that return only an error are not properties.
//
// Properties behind nil embedded pointers are omitted.
func (r *Resolver) Properties(v interface{}, options ...func(*ResolveContext)) (map[string]interface{}, error) {
	rc := newResolveContext(r.DefaultOptions, options)

	rv, err := indirect(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{}

	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		iter := rv.MapRange()
		for iter.Next() {
			if iter.Value().CanInterface() {
				res[iter.Key().String()] = iter.Value().Interface()
			}
		}

		return res, nil
	}

	names := map[string]bool{}
	kinds := map[AccessKind]bool{}

	for _, k := range rc.Priority {
		kinds[k] = true
	}

	if kinds[Field] && rv.Kind() == reflect.Struct {
		for name := range irefl.FieldProperties(rv.Type(), rc.PropertyNameTag) {
			names[name] = true
		}
	}

	pt := reflect.PtrTo(rv.Type())

	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)

		if !isPropertyMethod(m.Type, 1) {
			continue
		}

		if getter := strings.TrimPrefix(m.Name, "Get"); getter != m.Name && getter != "" {
			if kinds[Getter] {
				names[irefl.Unexported(getter)] = true
			}

			continue
		}

		if kinds[Method] {
			names[irefl.Unexported(m.Name)] = true
		}
	}

	for name := range names {
		pv, err := r.resolve(rv, name, rc)
		if err != nil {
			if errors.Is(err, ErrNoProperty) || errors.Is(err, ErrNilValue) {
				continue
			}

			return nil, err
		}

		res[name] = pv.Interface()
	}

	return res, nil
}

func (r *Resolver) resolve(v reflect.Value, name string, rc *ResolveContext) (reflect.Value, error) {
	v, err := indirect(v)
	if err != nil {
		return v, err
	}

	if name == "" {
		return reflect.Value{}, fmt.Errorf("%w: empty name in %s", ErrNoProperty, refl.GoType(v.Type()))
	}

	switch v.Kind() { //nolint:exhaustive // Other kinds only expose methods.
	case reflect.Map:
		kt := v.Type().Key()
		if kt.Kind() == reflect.String {
			if mv := v.MapIndex(reflect.ValueOf(name).Convert(kt)); mv.IsValid() && mv.CanInterface() {
				return mv, nil
			}
		}
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < v.Len() {
			if iv := v.Index(i); iv.CanInterface() {
				return iv, nil
			}
		}
	}

	var ptr reflect.Value

	for _, kind := range rc.Priority {
		var (
			pv    reflect.Value
			found bool
		)

		switch kind {
		case Field:
			pv, found, err = field(v, name, rc.PropertyNameTag)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%s %s: %w", kind, name, err)
			}
		case Getter, Method:
			if !ptr.IsValid() {
				ptr = ptrTo(v)
			}

			methodName := irefl.Exported(name)
			if kind == Getter {
				methodName = "Get" + methodName
			}

			pv, found, err = call(ptr, methodName)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%s %s: %w", kind, name, err)
			}
		}

		if !found {
			continue
		}

		if rc.InterceptProperty != nil {
			pv, err = rc.InterceptProperty(name, kind, pv)
			if errors.Is(err, ErrSkipProperty) {
				continue
			}

			if err != nil {
				return reflect.Value{}, err
			}
		}

		return pv, nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %q in %s", ErrNoProperty, name, refl.GoType(v.Type()))
}

func indirect(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, ErrNilValue
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return v, ErrNilValue
	}

	return v, nil
}

// ptrTo makes pointer method set available on v.
func ptrTo(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}

	p := reflect.New(v.Type())
	p.Elem().Set(v)

	return p
}

func field(v reflect.Value, name, tagname string) (reflect.Value, bool, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false, nil
	}

	idx, ok := irefl.FieldByProperty(v.Type(), name, tagname)
	if !ok {
		return reflect.Value{}, false, nil
	}

	fv, err := v.FieldByIndexErr(idx)
	if err != nil {
		return reflect.Value{}, true, ErrNilValue
	}

	if !fv.CanInterface() {
		return reflect.Value{}, false, nil
	}

	return fv, true, nil
}

// isPropertyMethod checks that method has no arguments besides receiver
// and returns a value with optional error.
func isPropertyMethod(t reflect.Type, numIn int) bool {
	if t.NumIn() != numIn || t.IsVariadic() {
		return false
	}

	switch t.NumOut() {
	case 1:
		return t.Out(0) != typeOfError
	case 2:
		return t.Out(1) == typeOfError
	default:
		return false
	}
}

func call(ptr reflect.Value, name string) (reflect.Value, bool, error) {
	m := ptr.MethodByName(name)
	if !m.IsValid() || !isPropertyMethod(m.Type(), 0) {
		return reflect.Value{}, false, nil
	}

	if irefl.HasNilEmbedded(ptr.Elem(), name) {
		return reflect.Value{}, true, ErrNilValue
	}

	out := m.Call(nil)

	if len(out) == 2 && !out[1].IsNil() {
		err, _ := out[1].Interface().(error)

		return reflect.Value{}, true, err
	}

	return out[0], true, nil
}
