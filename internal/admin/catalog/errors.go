package catalog

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the catalog service dependency has not been wired.
var ErrNotConfigured = errors.New("catalog: service not configured")

// ErrEmptyLabel is returned when tag resolution is attempted with blank input.
var ErrEmptyLabel = errors.New("catalog: tag label is empty")

// ErrNotFound indicates the requested product does not exist remotely.
var ErrNotFound = errors.New("catalog: product not found")

// TagCreateError reports a failed resolve-or-create for one label. The label
// is retained so the UI can leave the typed text unconsumed.
type TagCreateError struct {
	Label string
	Err   error
}

func (e *TagCreateError) Error() string {
	return fmt.Sprintf("catalog: create tag %q: %v", e.Label, e.Err)
}

func (e *TagCreateError) Unwrap() error { return e.Err }

// ProductCreateError reports a failed product-creation call. It aborts the
// whole submission attempt; no media upload is attempted after it.
type ProductCreateError struct {
	Err error
}

func (e *ProductCreateError) Error() string {
	return fmt.Sprintf("catalog: create product: %v", e.Err)
}

func (e *ProductCreateError) Unwrap() error { return e.Err }

// MediaUploadError reports one failed best-effort upload. It is scoped to a
// single file and never escalates past its own outcome entry.
type MediaUploadError struct {
	File string
	Kind MediaKind
	Err  error
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("catalog: upload %s %q: %v", e.Kind, e.File, e.Err)
}

func (e *MediaUploadError) Unwrap() error { return e.Err }
