package helpers

import (
	"context"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Attrs is an ordered-by-key attribute set for El.
type Attrs map[string]string

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// El builds an HTML element component. Attribute values and text content are
// escaped; markup structure comes only from the Go call tree.
func El(tag string, attrs Attrs, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<")
		b.WriteString(tag)

		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(attrs[key]))
			b.WriteString(`"`)
		}

		if voidElements[tag] {
			b.WriteString("/>")
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Text renders escaped text content.
func Text(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.EscapeString(value))
		return err
	})
}

// Raw renders the given markup without escaping. Only for trusted constants.
func Raw(markup string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

// Group renders the children in order without a wrapping element.
func Group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// If renders the component only when cond holds.
func If(cond bool, component templ.Component) templ.Component {
	if !cond {
		return Group()
	}
	return component
}
