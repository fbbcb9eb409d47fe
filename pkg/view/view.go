package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmpl "html/template"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"time"
)

//go:embed templates/*.html.tmpl
var FS embed.FS

const (
	layoutFile = "layout.html.tmpl"
	fileSuffix = ".html.tmpl"
)

var ErrUnknownView = errors.New("unknown view")

// Renderer turns a view name and its bindings into a response body.
type Renderer interface {
	Render(name string, bindings map[string]any) ([]byte, error)
}

// fieldMessages is satisfied by validation.FieldErrors.
type fieldMessages interface {
	For(field string) []string
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func fieldError(errs fieldMessages, field string) string {
	if errs == nil {
		return ""
	}
	return strings.Join(errs.For(field), "; ")
}

func hasError(errs fieldMessages, field string) bool {
	return fieldError(errs, field) != ""
}

func funcs() htmpl.FuncMap {
	return htmpl.FuncMap{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
		"fieldError": fieldError,
		"hasError":   hasError,
	}
}

// TemplateRenderer renders <name>.html.tmpl pages wrapped in the shared layout.
// Templates are parsed once; Render is safe for concurrent use.
type TemplateRenderer struct {
	views map[string]*htmpl.Template
}

// NewTemplateRenderer parses every page in fsys. fsys must hold the layout
// plus one file per view.
func NewTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	pages, err := fs.Glob(fsys, "*"+fileSuffix)
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}
	r := &TemplateRenderer{views: make(map[string]*htmpl.Template, len(pages))}
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := strings.TrimSuffix(page, fileSuffix)
		tpl, err := htmpl.New(layoutFile).Funcs(funcs()).ParseFS(fsys, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parse html %q: %w", page, err)
		}
		r.views[name] = tpl
	}
	if len(r.views) == 0 {
		return nil, errors.New("no view templates found")
	}
	return r, nil
}

// NewDefault builds a renderer over the embedded templates.
func NewDefault() (*TemplateRenderer, error) {
	sub, err := fs.Sub(FS, "templates")
	if err != nil {
		return nil, err
	}
	return NewTemplateRenderer(sub)
}

func (r *TemplateRenderer) Render(name string, bindings map[string]any) ([]byte, error) {
	tpl, ok := r.views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, layoutFile, bindings); err != nil {
		return nil, fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Names lists the parsed views.
func (r *TemplateRenderer) Names() []string {
	out := make([]string, 0, len(r.views))
	for n := range r.views {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
