package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// StaticService is an in-memory stand-in for the remote catalog service,
// used for local development and tests when no backend is configured.
type StaticService struct {
	mu          sync.Mutex
	tags        []Tag
	products    []Product
	nextTagID   int64
	nextProdID  int64
	nextMediaID int64
}

// NewStaticService returns a StaticService seeded with representative data.
func NewStaticService() *StaticService {
	now := time.Now()
	svc := &StaticService{
		tags: []Tag{
			{ID: 1, Name: "summer"},
			{ID: 2, Name: "clearance"},
			{ID: 3, Name: "new-arrival"},
		},
		products: []Product{
			{
				ID:          1,
				Name:        "Canvas Tote",
				Description: "Everyday carry tote in waxed canvas.",
				Price:       "34.00",
				Stock:       120,
				CreatedAt:   now.Add(-72 * time.Hour),
				Tags:        []Tag{{ID: 1, Name: "summer"}},
				Variants: []Variant{
					{ID: 1, SKU: "TOTE-NAT", Name: "Natural", Color: "natural", Size: "one", Price: "34.00", Stock: 80},
					{ID: 2, SKU: "TOTE-BLK", Name: "Black", Color: "black", Size: "one", Price: "34.00", Stock: 40},
				},
				Images: []ProductImage{
					{ID: 1, Path: "products/images/tote.jpg", URL: "https://cdn.example.com/products/images/tote.jpg"},
				},
			},
			{
				ID:        2,
				Name:      "Enamel Mug",
				Price:     "18.50",
				Stock:     45,
				CreatedAt: now.Add(-24 * time.Hour),
				Tags:      []Tag{{ID: 2, Name: "clearance"}, {ID: 3, Name: "new-arrival"}},
			},
		},
		nextTagID:   4,
		nextProdID:  3,
		nextMediaID: 1,
	}
	return svc
}

// ListTags returns the current tag listing.
func (s *StaticService) ListTags(ctx context.Context) ([]Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tag(nil), s.tags...), nil
}

// CreateTag appends a tag, enforcing the service's unique-name rule.
func (s *StaticService) CreateTag(ctx context.Context, name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("name: This field may not be blank")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tags {
		if t.Name == name {
			return Tag{}, fmt.Errorf("name: tag with this name already exists")
		}
	}
	tag := Tag{ID: s.nextTagID, Name: name}
	s.nextTagID++
	s.tags = append(s.tags, tag)
	return tag, nil
}

// ListProducts returns products, newest first, filtered by name search.
func (s *StaticService) ListProducts(ctx context.Context, search string) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Product, 0, len(s.products))
	for i := len(s.products) - 1; i >= 0; i-- {
		p := s.products[i]
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct retrieves a product by identifier.
func (s *StaticService) GetProduct(ctx context.Context, id int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// CreateProduct stores a new product with its tag links and variants.
func (s *StaticService) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return nil, fmt.Errorf("name: Product name must be at least 2 characters long")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == req.Name {
			return nil, fmt.Errorf("name: Product name must be unique")
		}
	}

	product := Product{
		ID:          s.nextProdID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       parseIntField(req.Stock),
		CreatedAt:   time.Now(),
		Tags:        make([]Tag, 0, len(req.Tags)),
	}
	s.nextProdID++

	for _, id := range req.Tags {
		for _, t := range s.tags {
			if t.ID == id {
				product.Tags = append(product.Tags, t)
				break
			}
		}
	}
	for i, row := range req.Variants {
		product.Variants = append(product.Variants, Variant{
			ID:    int64(i + 1),
			SKU:   row.SKU,
			Name:  row.Name,
			Color: row.Color,
			Size:  row.Size,
			Price: row.Price,
			Stock: parseIntField(row.Stock),
		})
	}

	s.products = append(s.products, product)
	return &product, nil
}

// DeleteProduct removes a product and everything nested under it.
func (s *StaticService) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// UploadImage records an image against an existing product.
func (s *StaticService) UploadImage(ctx context.Context, productID int64, file MediaFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			id := s.nextMediaID
			s.nextMediaID++
			s.products[i].Images = append(s.products[i].Images, ProductImage{
				ID:   id,
				Path: "products/images/" + file.Name,
				URL:  "https://cdn.example.com/products/images/" + file.Name,
			})
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, productID)
}

// UploadVideo records a video against an existing product.
func (s *StaticService) UploadVideo(ctx context.Context, productID int64, file MediaFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			id := s.nextMediaID
			s.nextMediaID++
			s.products[i].Videos = append(s.products[i].Videos, ProductVideo{
				ID:   id,
				Path: "products/videos/" + file.Name,
				URL:  "https://cdn.example.com/products/videos/" + file.Name,
			})
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, productID)
}

func parseIntField(v string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(v))
	return n
}
