package helpers

import (
	"context"
	"net/url"
	"strings"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
)

// RequestPath returns the current request URL path for template helpers.
func RequestPath(ctx context.Context) string {
	return normalizeRoute(middleware.RequestPathFromContext(ctx))
}

// BasePath returns the configured admin base path.
func BasePath(ctx context.Context) string {
	return normalizeRoute(middleware.BasePathFromContext(ctx))
}

// Href joins the admin base path with a route.
func Href(ctx context.Context, route string) string {
	base := BasePath(ctx)
	route = normalizeRoute(route)
	if base == "/" {
		return route
	}
	if route == "/" {
		return base
	}
	return base + route
}

// NavActive reports whether the current request should highlight the menu item.
func NavActive(ctx context.Context, pattern string, prefix bool) bool {
	current := RequestPath(ctx)
	target := normalizeRoute(pattern)

	if target == "" {
		return false
	}

	if prefix {
		if target == "/" {
			return current == "/"
		}
		if current == target {
			return true
		}
		return strings.HasPrefix(current, target+"/")
	}

	return current == target
}

// SetRawQuery returns rawQuery with key set to value.
func SetRawQuery(rawQuery, key, value string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(key, value)
	return values.Encode()
}

// DelRawQuery returns rawQuery with key removed.
func DelRawQuery(rawQuery, key string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return rawQuery
	}
	values.Del(key)
	return values.Encode()
}

// BuildURL combines a path with a raw query, dropping any prior query string.
func BuildURL(path, rawQuery string) string {
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

func normalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
