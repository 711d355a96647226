package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/catalog"
)

// submissionService records the calls the orchestrator makes against the
// remote service and fails the uploads it is told to fail.
type submissionService struct {
	catalog.Service

	mu            sync.Mutex
	createErr     error
	created       []catalog.CreateProductRequest
	uploads       []string
	failImages    map[string]error
	failVideos    map[string]error
	nextProductID int64
}

func (s *submissionService) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, req)
	if s.nextProductID == 0 {
		s.nextProductID = 101
	}
	id := s.nextProductID
	s.nextProductID++
	return &catalog.Product{ID: id, Name: req.Name}, nil
}

func (s *submissionService) UploadImage(ctx context.Context, productID int64, file catalog.MediaFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, "image:"+file.Name)
	if err, ok := s.failImages[file.Name]; ok {
		return err
	}
	return nil
}

func (s *submissionService) UploadVideo(ctx context.Context, productID int64, file catalog.MediaFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, "video:"+file.Name)
	if err, ok := s.failVideos[file.Name]; ok {
		return err
	}
	return nil
}

func TestSubmitEmptyDraftSucceeds(t *testing.T) {
	t.Parallel()

	svc := &submissionService{}
	sub := catalog.NewSubmitter(svc, nil)

	result := sub.Submit(context.Background(), catalog.Draft{Name: "Plain Shirt", Price: "10.00", Stock: "5"})

	require.True(t, result.Succeeded)
	require.NotZero(t, result.ProductID)
	require.NotEmpty(t, result.AttemptID)
	require.Empty(t, result.MediaOutcomes)
	require.Empty(t, svc.uploads)
}

func TestSubmitSendsTagsAndVariantsVerbatim(t *testing.T) {
	t.Parallel()

	svc := &submissionService{}
	sub := catalog.NewSubmitter(svc, nil)

	draft := catalog.Draft{Name: "Cap", Price: "9.99", Stock: "3"}
	draft.AddTag(7)
	draft.AddTag(3)
	draft.AddVariant()
	draft.SetVariantField(0, "sku", "CAP-RED")
	draft.SetVariantField(0, "color", "red")

	result := sub.Submit(context.Background(), draft.Clone())
	require.True(t, result.Succeeded)

	require.Len(t, svc.created, 1)
	req := svc.created[0]
	require.Equal(t, []int64{7, 3}, req.Tags)
	require.Len(t, req.Variants, 1)
	require.Equal(t, "CAP-RED", req.Variants[0].SKU)
	require.Equal(t, "red", req.Variants[0].Color)
}

func TestSubmitProductCreationFailureAbortsUploads(t *testing.T) {
	t.Parallel()

	svc := &submissionService{createErr: errors.New("name: Product name must be unique")}
	sub := catalog.NewSubmitter(svc, nil)

	draft := catalog.Draft{Name: "Dup"}
	draft.AddImages(catalog.MediaFile{Name: "a.jpg"}, catalog.MediaFile{Name: "b.jpg"})
	draft.AddVideos(catalog.MediaFile{Name: "c.mp4"})

	result := sub.Submit(context.Background(), draft.Clone())

	require.False(t, result.Succeeded)
	require.Zero(t, result.ProductID)
	require.Empty(t, result.MediaOutcomes)
	require.Empty(t, svc.uploads, "no upload call may be issued after a failed create")

	var createErr *catalog.ProductCreateError
	require.ErrorAs(t, result.Err, &createErr)
}

func TestSubmitPartialMediaFailureIsIsolated(t *testing.T) {
	t.Parallel()

	svc := &submissionService{
		failImages: map[string]error{"two.jpg": errors.New("Image size cannot exceed 5MB.")},
	}
	sub := catalog.NewSubmitter(svc, nil)

	draft := catalog.Draft{Name: "Poster Set"}
	draft.AddImages(
		catalog.MediaFile{Name: "one.jpg"},
		catalog.MediaFile{Name: "two.jpg"},
		catalog.MediaFile{Name: "three.jpg"},
	)
	draft.AddVideos(
		catalog.MediaFile{Name: "promo.mp4"},
		catalog.MediaFile{Name: "teaser.mp4"},
	)

	result := sub.Submit(context.Background(), draft.Clone())

	require.True(t, result.Succeeded, "media failures do not flip the overall success signal")
	require.Len(t, result.MediaOutcomes, 5)

	wantOrder := []string{"one.jpg", "two.jpg", "three.jpg", "promo.mp4", "teaser.mp4"}
	for i, o := range result.MediaOutcomes {
		require.Equal(t, wantOrder[i], o.File, "outcomes preserve insertion order")
	}

	failed := result.FailedMedia()
	require.Len(t, failed, 1)
	require.Equal(t, "two.jpg", failed[0].File)
	require.Equal(t, catalog.KindImage, failed[0].Kind)

	var upErr *catalog.MediaUploadError
	require.ErrorAs(t, failed[0].Err, &upErr)
	require.Equal(t, "two.jpg", upErr.File)
}

func TestSubmitImagesAttemptedBeforeVideos(t *testing.T) {
	t.Parallel()

	svc := &submissionService{}
	sub := catalog.NewSubmitter(svc, nil)

	draft := catalog.Draft{Name: "Bundle"}
	draft.AddImages(catalog.MediaFile{Name: "a.jpg"}, catalog.MediaFile{Name: "b.jpg"})
	draft.AddVideos(catalog.MediaFile{Name: "v.mp4"})

	result := sub.Submit(context.Background(), draft.Clone())
	require.True(t, result.Succeeded)

	// Every image attempt happens before the first video attempt, whatever
	// order the image uploads themselves completed in.
	firstVideo := -1
	lastImage := -1
	for i, call := range svc.uploads {
		switch call[:5] {
		case "image":
			lastImage = i
		case "video":
			if firstVideo == -1 {
				firstVideo = i
			}
		}
	}
	require.NotEqual(t, -1, firstVideo)
	require.Greater(t, firstVideo, lastImage)
}

func TestSubmitSanitizesDescriptionMarkup(t *testing.T) {
	t.Parallel()

	svc := &submissionService{}
	sub := catalog.NewSubmitter(svc, nil)

	draft := catalog.Draft{
		Name:        "Lamp",
		Description: `Warm light<script>alert("x")</script>`,
	}
	result := sub.Submit(context.Background(), draft.Clone())
	require.True(t, result.Succeeded)

	require.Len(t, svc.created, 1)
	require.NotContains(t, svc.created[0].Description, "<script>")
	require.Contains(t, svc.created[0].Description, "Warm light")
}
