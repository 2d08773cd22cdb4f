package web

import (
	"embed"
	"fmt"
	"html/template"
	"reflect"
	"strings"
)

//go:embed templates/*.html
var FS embed.FS

// View names accepted by c.HTML.
const (
	ViewIndex      = "index"
	ViewCreateUser = "createUser"
	ViewUpdateUser = "updateUser"
	ViewSearch     = "search"
)

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

func funcs() template.FuncMap {
	return template.FuncMap{
		"default": defaultFn,
	}
}

// Load parses every embedded view. The result is installed with
// engine.SetHTMLTemplate.
func Load() (*template.Template, error) {
	tpl, err := template.New("").Funcs(funcs()).ParseFS(FS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	for _, name := range []string{ViewIndex, ViewCreateUser, ViewUpdateUser, ViewSearch} {
		if tpl.Lookup(name) == nil {
			return nil, fmt.Errorf("view %q not defined", name)
		}
	}
	return tpl, nil
}

// MustLoad is Load for start-up code.
func MustLoad() *template.Template {
	tpl, err := Load()
	if err != nil {
		panic(err)
	}
	return tpl
}
