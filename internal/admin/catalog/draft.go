package catalog

import "sync"

// VariantRow is one user-editable variant line in a draft. Rows carry no
// remote identity; they are submitted embedded in the product-creation call.
type VariantRow struct {
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock string `json:"stock"`
}

// Draft is the in-memory representation of a product being composed: scalar
// fields as the user typed them, the ordered set of selected tag identifiers,
// variant rows, and pending media files. Pure data and mutation rules, no
// I/O; field values are not validated here.
type Draft struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Tags        []int64
	Variants    []VariantRow
	Images      []MediaFile
	Videos      []MediaFile
}

// HasTag reports whether the tag identifier is already selected.
func (d *Draft) HasTag(id int64) bool {
	for _, t := range d.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// AddTag selects a tag identifier. Adding one already present is a no-op, so
// the selected set never contains two entries for the same remote tag.
func (d *Draft) AddTag(id int64) {
	if d.HasTag(id) {
		return
	}
	d.Tags = append(d.Tags, id)
}

// RemoveTag deselects a tag identifier; removing an absent one is a no-op.
func (d *Draft) RemoveTag(id int64) {
	for i, t := range d.Tags {
		if t == id {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return
		}
	}
}

// AddVariant appends an empty variant row and returns its index.
func (d *Draft) AddVariant() int {
	d.Variants = append(d.Variants, VariantRow{})
	return len(d.Variants) - 1
}

// SetVariantField replaces one field of one row by index. Unknown indexes and
// field names are ignored.
func (d *Draft) SetVariantField(index int, field, value string) {
	if index < 0 || index >= len(d.Variants) {
		return
	}
	row := &d.Variants[index]
	switch field {
	case "name":
		row.Name = value
	case "sku":
		row.SKU = value
	case "price":
		row.Price = value
	case "color":
		row.Color = value
	case "size":
		row.Size = value
	case "stock":
		row.Stock = value
	}
}

// RemoveVariant deletes the row at index, preserving the relative order of
// the remainder.
func (d *Draft) RemoveVariant(index int) {
	if index < 0 || index >= len(d.Variants) {
		return
	}
	d.Variants = append(d.Variants[:index], d.Variants[index+1:]...)
}

// AddImages appends pending image files. No dedup by name or content; two
// identical selections are both kept and both uploaded.
func (d *Draft) AddImages(files ...MediaFile) {
	d.Images = append(d.Images, files...)
}

// AddVideos appends pending video files.
func (d *Draft) AddVideos(files ...MediaFile) {
	d.Videos = append(d.Videos, files...)
}

// Reset clears the draft back to the empty state. Called only after a
// submission whose product-creation step succeeded.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Clone returns a deep snapshot of the draft. The orchestrator consumes
// snapshots so background completions can never write into a draft the
// workflow has already torn down or reset.
func (d *Draft) Clone() Draft {
	out := *d
	out.Tags = append([]int64(nil), d.Tags...)
	out.Variants = append([]VariantRow(nil), d.Variants...)
	out.Images = append([]MediaFile(nil), d.Images...)
	out.Videos = append([]MediaFile(nil), d.Videos...)
	return out
}

// DraftStore owns the in-progress drafts, one per admin session. A draft is
// created empty on first access and discarded only via Reset.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewDraftStore constructs an empty store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*Draft)}
}

// Get returns the draft owned by the session, creating an empty one if the
// session has none yet.
func (s *DraftStore) Get(sessionID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		d = &Draft{}
		s.drafts[sessionID] = d
	}
	return d
}

// Reset replaces the session's draft with a fresh empty one.
func (s *DraftStore) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
}
