package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/mtattr/mtattr/pkg/attr"
)

// parseAttrs turns name=value arguments into a record. The value is
// everything after the first '='.
func parseAttrs(args []string) (attr.Record, error) {
	rec := make(attr.Record, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("attribute %q is not name=value", arg)
		}
		rec = append(rec, attr.Attr{Name: name, Value: value})
	}
	return rec, nil
}

func printRecord(w io.Writer, rec attr.Record) error {
	for _, a := range rec {
		if _, err := fmt.Fprintf(w, "%s=%s\n", a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// renderTemplate renders a mustache template against rec. Each attribute is
// available by name (first value wins) and the full list as {{#attrs}}.
func renderTemplate(tmpl string, rec attr.Record) (string, error) {
	values := make(map[string]string, len(rec))
	list := make([]map[string]string, 0, len(rec))
	for _, a := range rec {
		if _, seen := values[a.Name]; !seen {
			values[a.Name] = a.Value
		}
		list = append(list, map[string]string{"name": a.Name, "value": a.Value})
	}
	return mustache.Render(tmpl, values, map[string]any{"attrs": list})
}
