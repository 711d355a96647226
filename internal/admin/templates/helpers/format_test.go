package helpers

import (
	"bytes"
	"context"
	"net/url"
	"testing"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "decimal string", value: "19.99", want: "$19.99"},
		{name: "integer string", value: "5", want: "$5.00"},
		{name: "trims whitespace", value: " 12.5 ", want: "$12.50"},
		{name: "empty value", value: "", want: "$0.00"},
		{name: "unparseable stays visible", value: "free", want: "free"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Price(tc.value); got != tc.want {
				t.Errorf("Price(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestSetRawQuery(t *testing.T) {
	t.Parallel()

	got := SetRawQuery("search=tote&page=2", "page", "3")
	values, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	if values.Get("page") != "3" {
		t.Errorf("expected page=3, got %q", values.Get("page"))
	}
	if values.Get("search") != "tote" {
		t.Errorf("expected search preserved, got %q", values.Get("search"))
	}
}

func TestDelRawQuery(t *testing.T) {
	t.Parallel()

	got := DelRawQuery("search=tote&page=2", "page")
	values, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	if values.Get("page") != "" {
		t.Errorf("expected page param removed, got %q", values.Get("page"))
	}
	if values.Get("search") != "tote" {
		t.Errorf("expected search preserved, got %q", values.Get("search"))
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	u := BuildURL("/admin/products", "search=tote")
	if u != "/admin/products?search=tote" {
		t.Errorf("unexpected URL: %s", u)
	}

	// handles empty raw query without trailing question mark
	u = BuildURL("/admin/products?search=old", "")
	if u != "/admin/products" {
		t.Errorf("expected query stripped when empty, got %s", u)
	}
}

func TestElEscapesAttributesAndText(t *testing.T) {
	t.Parallel()

	component := El("button", Attrs{"data-label": `say "hi"`}, Text("<b>click</b>"))

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	got := buf.String()
	want := `<button data-label="say &#34;hi&#34;">&lt;b&gt;click&lt;/b&gt;</button>`
	if got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestElRendersVoidElements(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := El("input", Attrs{"name": "price", "type": "text"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != `<input name="price" type="text"/>` {
		t.Errorf("unexpected void element markup: %s", got)
	}
}
