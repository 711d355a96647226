package products

import (
	"fmt"
	"time"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
)

// ListPageData represents the products index payload.
type ListPageData struct {
	Title      string
	SearchTerm string
	Products   []ListItem
	Error      string
}

// ListItem is one row in the products table.
type ListItem struct {
	ID         int64
	Name       string
	Price      string
	Stock      string
	TagNames   []string
	MediaCount string
	CreatedAt  time.Time
}

// DetailPageData represents a single product page.
type DetailPageData struct {
	Title   string
	Product DetailView
}

// DetailView is the rendered representation of one product.
type DetailView struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Stock       string
	CreatedAt   time.Time
	Tags        []string
	Variants    []VariantView
	Images      []MediaView
	Videos      []MediaView
}

// VariantView is one read-only variant row.
type VariantView struct {
	Name  string
	SKU   string
	Price string
	Color string
	Size  string
	Stock string
}

// MediaView is one attached media entry.
type MediaView struct {
	URL     string
	AltText string
}

// BuildListPageData prepares the index payload.
func BuildListPageData(searchTerm string, list []catalog.Product) ListPageData {
	items := make([]ListItem, 0, len(list))
	for _, product := range list {
		items = append(items, ListItem{
			ID:         product.ID,
			Name:       product.Name,
			Price:      helpers.Price(product.Price),
			Stock:      fmt.Sprintf("%d", product.Stock),
			TagNames:   tagNames(product.Tags),
			MediaCount: mediaCount(product),
			CreatedAt:  product.CreatedAt,
		})
	}
	return ListPageData{
		Title:      "Products",
		SearchTerm: searchTerm,
		Products:   items,
	}
}

// BuildDetailPageData prepares the detail payload.
func BuildDetailPageData(product catalog.Product) DetailPageData {
	view := DetailView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       helpers.Price(product.Price),
		Stock:       fmt.Sprintf("%d", product.Stock),
		CreatedAt:   product.CreatedAt,
		Tags:        tagNames(product.Tags),
	}
	for _, variant := range product.Variants {
		view.Variants = append(view.Variants, VariantView{
			Name:  variant.Name,
			SKU:   variant.SKU,
			Price: helpers.Price(variant.Price),
			Color: variant.Color,
			Size:  variant.Size,
			Stock: fmt.Sprintf("%d", variant.Stock),
		})
	}
	for _, image := range product.Images {
		view.Images = append(view.Images, MediaView{URL: image.URL, AltText: image.AltText})
	}
	for _, video := range product.Videos {
		view.Videos = append(view.Videos, MediaView{URL: video.URL})
	}
	return DetailPageData{Title: product.Name, Product: view}
}

func tagNames(tags []catalog.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func mediaCount(product catalog.Product) string {
	total := len(product.Images) + len(product.Videos)
	return helpers.Plural(total, "file")
}
