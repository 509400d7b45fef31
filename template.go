package tinyplate

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// FuncMap exposes property resolution to templates.
//
//	{{ . | prop "foo.bar" }}
//	{{ range $k, $v := props . }}{{ $k }}={{ $v }} {{ end }}
func (r *Resolver) FuncMap(options ...func(*ResolveContext)) template.FuncMap {
	return template.FuncMap{
		"prop": func(path string, v interface{}) (interface{}, error) {
			return r.Lookup(v, path, options...)
		},
		"props": func(v interface{}) (map[string]interface{}, error) {
			return r.Properties(v, options...)
		},
	}
}

// Render executes text template against data.
//
// Template has Sprig functions and resolver functions of FuncMap available.
func (r *Resolver) Render(text string, data interface{}, options ...func(*ResolveContext)) (string, error) {
	funcs := sprig.TxtFuncMap()
	for name, f := range r.FuncMap(options...) {
		funcs[name] = f
	}

	t, err := template.New("tinyplate").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var b strings.Builder

	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	return b.String(), nil
}

// Render executes text template against data with default Resolver.
func Render(text string, data interface{}, options ...func(*ResolveContext)) (string, error) {
	return defaultResolver.Render(text, data, options...)
}
