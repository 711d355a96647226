package composer

import (
	"fmt"

	"adflow.dev/adflow-admin/internal/admin/catalog"
)

// PageData represents the full product composer SSR payload.
type PageData struct {
	Title     string
	Form      FormData
	KnownTags []TagView
	Result    *ResultView
}

// FormData mirrors the draft under edit.
type FormData struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Tags        []TagView
	Variants    []VariantView
	Images      []MediaView
	Videos      []MediaView
	TagError    string
}

// TagView is the rendered representation of a tag chip.
type TagView struct {
	ID   int64
	Name string
}

// VariantView is one editable variant row.
type VariantView struct {
	Index int
	Name  string
	SKU   string
	Price string
	Color string
	Size  string
	Stock string
}

// MediaView describes one staged upload.
type MediaView struct {
	Index int
	Name  string
	Kind  string
	Size  string
}

// ResultView summarises a submission attempt.
type ResultView struct {
	AttemptID string
	Succeeded bool
	ProductID int64
	Message   string
	Media     []MediaOutcomeView
}

// MediaOutcomeView is one per-file upload outcome.
type MediaOutcomeView struct {
	Name      string
	Kind      string
	Succeeded bool
	Detail    string
}

// BuildPageData prepares the composer payload from the session draft and the
// current tag snapshot.
func BuildPageData(draft catalog.Draft, known []catalog.Tag) PageData {
	return PageData{
		Title:     "Add product",
		Form:      FormPayload(draft, known),
		KnownTags: toTagViews(known),
	}
}

// FormPayload converts the draft into its rendered form state. Selected tag
// identifiers are labelled from the known-tags snapshot.
func FormPayload(draft catalog.Draft, known []catalog.Tag) FormData {
	return FormData{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Stock:       draft.Stock,
		Tags:        selectedTagViews(draft.Tags, known),
		Variants:    toVariantViews(draft.Variants),
		Images:      toMediaViews(draft.Images, "image"),
		Videos:      toMediaViews(draft.Videos, "video"),
	}
}

func selectedTagViews(ids []int64, known []catalog.Tag) []TagView {
	byID := make(map[int64]string, len(known))
	for _, tag := range known {
		byID[tag.ID] = tag.Name
	}
	result := make([]TagView, 0, len(ids))
	for _, id := range ids {
		name, ok := byID[id]
		if !ok {
			name = fmt.Sprintf("#%d", id)
		}
		result = append(result, TagView{ID: id, Name: name})
	}
	return result
}

// ResultPayload converts a submission result for rendering.
func ResultPayload(result catalog.SubmissionResult) *ResultView {
	view := &ResultView{
		AttemptID: result.AttemptID,
		Succeeded: result.Succeeded,
		ProductID: result.ProductID,
	}

	if !result.Succeeded {
		view.Message = "Product could not be created."
		if result.Err != nil {
			view.Message = fmt.Sprintf("Product could not be created: %v", result.Err)
		}
		return view
	}

	failed := result.FailedMedia()
	switch len(failed) {
	case 0:
		view.Message = "Product created."
	default:
		view.Message = fmt.Sprintf("Product created, but %d of %d files failed to upload.", len(failed), len(result.MediaOutcomes))
	}

	view.Media = make([]MediaOutcomeView, 0, len(result.MediaOutcomes))
	for _, outcome := range result.MediaOutcomes {
		item := MediaOutcomeView{
			Name:      outcome.File,
			Kind:      string(outcome.Kind),
			Succeeded: outcome.Succeeded,
		}
		if outcome.Err != nil {
			item.Detail = outcome.Err.Error()
		}
		view.Media = append(view.Media, item)
	}
	return view
}

func toTagViews(tags []catalog.Tag) []TagView {
	result := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		result = append(result, TagView{ID: tag.ID, Name: tag.Name})
	}
	return result
}

func toVariantViews(rows []catalog.VariantRow) []VariantView {
	result := make([]VariantView, 0, len(rows))
	for i, row := range rows {
		result = append(result, VariantView{
			Index: i,
			Name:  row.Name,
			SKU:   row.SKU,
			Price: row.Price,
			Color: row.Color,
			Size:  row.Size,
			Stock: row.Stock,
		})
	}
	return result
}

func toMediaViews(files []catalog.MediaFile, kind string) []MediaView {
	result := make([]MediaView, 0, len(files))
	for i, file := range files {
		result = append(result, MediaView{
			Index: i,
			Name:  file.Name,
			Kind:  kind,
			Size:  formatSize(len(file.Content)),
		})
	}
	return result
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
