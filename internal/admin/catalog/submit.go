package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const defaultUploadConcurrency = 4

// MediaOutcome records the result of one best-effort upload attempt.
type MediaOutcome struct {
	File      string
	Kind      MediaKind
	Succeeded bool
	Err       error
}

// SubmissionResult is the outcome of one submission attempt. Succeeded is
// gated on the product-creation step only; media outcomes are reported but do
// not flip the flag, so the caller can keep the product and retry failed
// files alone.
type SubmissionResult struct {
	AttemptID     string
	ProductID     int64
	Succeeded     bool
	Err           error
	MediaOutcomes []MediaOutcome
}

// FailedMedia returns the outcomes whose upload did not succeed.
func (r SubmissionResult) FailedMedia() []MediaOutcome {
	var failed []MediaOutcome
	for _, o := range r.MediaOutcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}

// Submitter drives a draft snapshot to a consistent remote state through the
// ordered sequence of dependent calls: create product, then upload images,
// then upload videos.
type Submitter struct {
	svc         Service
	log         *zap.Logger
	sanitizer   *bluemonday.Policy
	concurrency int
}

// NewSubmitter constructs a Submitter over the remote service.
func NewSubmitter(svc Service, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{
		svc:         svc,
		log:         log,
		sanitizer:   bluemonday.UGCPolicy(),
		concurrency: defaultUploadConcurrency,
	}
}

// Submit executes one submission attempt over a draft snapshot.
//
// Only tag identifiers already selected in the draft are sent; unresolved
// text left in the tag entry field is never auto-submitted. If product
// creation fails the attempt aborts with empty media outcomes and the caller
// keeps the draft for correction. Otherwise every pending image is attempted
// before any video, each upload independent of its siblings, and the outcome
// sequence preserves the draft's insertion order.
func (s *Submitter) Submit(ctx context.Context, draft Draft) SubmissionResult {
	attempt := ulid.Make().String()
	result := SubmissionResult{AttemptID: attempt}

	if s.svc == nil {
		result.Err = &ProductCreateError{Err: ErrNotConfigured}
		return result
	}

	req := CreateProductRequest{
		Name:        strings.TrimSpace(draft.Name),
		Description: s.sanitizer.Sanitize(draft.Description),
		Price:       strings.TrimSpace(draft.Price),
		Stock:       strings.TrimSpace(draft.Stock),
		Tags:        append([]int64(nil), draft.Tags...),
		Variants:    append([]VariantRow(nil), draft.Variants...),
	}

	product, err := s.svc.CreateProduct(ctx, req)
	if err != nil {
		s.log.Warn("product creation failed",
			zap.String("attempt", attempt),
			zap.Error(err))
		result.Err = &ProductCreateError{Err: err}
		return result
	}

	result.ProductID = product.ID
	result.Succeeded = true

	result.MediaOutcomes = s.uploadAll(ctx, product.ID, draft.Images, KindImage)
	result.MediaOutcomes = append(result.MediaOutcomes,
		s.uploadAll(ctx, product.ID, draft.Videos, KindVideo)...)

	s.log.Info("submission attempt finished",
		zap.String("attempt", attempt),
		zap.Int64("product_id", product.ID),
		zap.Int("media", len(result.MediaOutcomes)),
		zap.Int("media_failed", len(result.FailedMedia())))
	return result
}

// uploadAll attempts every file of one kind. Uploads within the kind may run
// concurrently; outcomes are gathered by index so the reported sequence is
// always the draft's insertion order regardless of completion order.
func (s *Submitter) uploadAll(ctx context.Context, productID int64, files []MediaFile, kind MediaKind) []MediaOutcome {
	if len(files) == 0 {
		return nil
	}
	outcomes := make([]MediaOutcome, len(files))

	limit := s.concurrency
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file MediaFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = s.uploadOne(ctx, productID, file, kind)
		}(i, file)
	}
	wg.Wait()
	return outcomes
}

// uploadOne performs a single best-effort upload. Every failure is captured
// as a value; nothing propagates past this boundary, because the submission
// must continue past individual upload failures.
func (s *Submitter) uploadOne(ctx context.Context, productID int64, file MediaFile, kind MediaKind) MediaOutcome {
	var err error
	switch kind {
	case KindVideo:
		err = s.svc.UploadVideo(ctx, productID, file)
	default:
		err = s.svc.UploadImage(ctx, productID, file)
	}
	if err != nil {
		s.log.Warn("media upload failed",
			zap.Int64("product_id", productID),
			zap.String("kind", string(kind)),
			zap.String("file", file.Name),
			zap.Error(err))
		return MediaOutcome{
			File: file.Name,
			Kind: kind,
			Err:  &MediaUploadError{File: file.Name, Kind: kind, Err: err},
		}
	}
	return MediaOutcome{File: file.Name, Kind: kind, Succeeded: true}
}
