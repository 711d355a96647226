package catalog

import (
	"context"
	"time"
)

// Service exposes the remote catalog API consumed by the admin console.
// Every piece of persistent catalog state lives behind this boundary; the
// console itself only composes drafts and drives submissions.
type Service interface {
	// ListTags returns every tag known to the catalog service.
	ListTags(ctx context.Context) ([]Tag, error)
	// CreateTag registers a new tag with the given label and returns it with
	// its server-assigned identifier.
	CreateTag(ctx context.Context, name string) (Tag, error)
	// ListProducts returns products, optionally filtered by a name search.
	ListProducts(ctx context.Context, search string) ([]Product, error)
	// GetProduct retrieves a single product with its nested tags, variants
	// and media.
	GetProduct(ctx context.Context, id int64) (*Product, error)
	// CreateProduct creates a product together with its tag links and
	// embedded variant rows in a single call.
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	// DeleteProduct removes a product and everything nested under it.
	DeleteProduct(ctx context.Context, id int64) error
	// UploadImage attaches one image file to an existing product.
	UploadImage(ctx context.Context, productID int64, file MediaFile) error
	// UploadVideo attaches one video file to an existing product.
	UploadVideo(ctx context.Context, productID int64, file MediaFile) error
}

// Tag is a catalog label. Identifiers are assigned by the remote service and
// never minted client-side.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Variant is a persisted product variant as returned by the service.
type Variant struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

// ProductImage is a persisted product image reference.
type ProductImage struct {
	ID      int64  `json:"id"`
	Path    string `json:"image"`
	URL     string `json:"image_url"`
	AltText string `json:"alt_text"`
}

// ProductVideo is a persisted product video reference.
type ProductVideo struct {
	ID      int64  `json:"id"`
	Path    string `json:"video"`
	URL     string `json:"video_url"`
	Caption string `json:"caption"`
}

// Product is the full remote representation with nested collections.
// Price is a decimal string on the wire.
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Stock       int            `json:"stock"`
	CreatedAt   time.Time      `json:"created_at"`
	Tags        []Tag          `json:"tags"`
	Variants    []Variant      `json:"variants"`
	Images      []ProductImage `json:"images"`
	Videos      []ProductVideo `json:"videos"`
}

// CreateProductRequest carries the scalar fields, the selected tag
// identifiers and the variant rows embedded verbatim. Price and stock are
// passed through as the user typed them; coercion and validation are the
// service's concern.
type CreateProductRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       string       `json:"price"`
	Stock       string       `json:"stock"`
	Tags        []int64      `json:"tags"`
	Variants    []VariantRow `json:"variants"`
}

// MediaKind discriminates pending media files.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// MediaFile is an opaque binary payload selected for upload. It carries no
// identity until uploaded; the upload response is not tracked further.
type MediaFile struct {
	Name    string
	Content []byte
}
