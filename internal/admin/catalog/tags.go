package catalog

import (
	"context"
	"strings"
	"sync"
)

// TagCache is the known-tags snapshot shared by every resolution on the
// submission screen. It is an explicitly owned object with its own lifecycle:
// seeded on workflow entry, replaced after every successful tag creation,
// dropped when the screen closes. Labels are indexed case-insensitively.
type TagCache struct {
	mu      sync.RWMutex
	byLabel map[string]Tag
	ordered []Tag
}

// NewTagCache constructs an empty cache.
func NewTagCache() *TagCache {
	return &TagCache{byLabel: make(map[string]Tag)}
}

// Replace swaps the full snapshot for the given tag listing.
func (c *TagCache) Replace(tags []Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byLabel = make(map[string]Tag, len(tags))
	c.ordered = append([]Tag(nil), tags...)
	for _, t := range tags {
		c.byLabel[foldLabel(t.Name)] = t
	}
}

// Add inserts a single tag into the snapshot without a full refresh.
func (c *TagCache) Add(tag Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := foldLabel(tag.Name)
	if _, ok := c.byLabel[key]; !ok {
		c.ordered = append(c.ordered, tag)
	}
	c.byLabel[key] = tag
}

// Lookup finds a tag whose label matches case-insensitively after trimming.
func (c *TagCache) Lookup(label string) (Tag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byLabel[foldLabel(label)]
	return t, ok
}

// Tags returns a copy of the snapshot in listing order, for rendering the
// selection state.
func (c *TagCache) Tags() []Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Tag(nil), c.ordered...)
}

func foldLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Resolver maps a user-typed tag label to a stable tag identifier, creating
// the tag remotely only when no matching one exists.
type Resolver struct {
	svc   Service
	cache *TagCache
}

// NewResolver constructs a Resolver over the given service and cache.
func NewResolver(svc Service, cache *TagCache) *Resolver {
	if cache == nil {
		cache = NewTagCache()
	}
	return &Resolver{svc: svc, cache: cache}
}

// Refresh reloads the known-tags snapshot from the remote listing.
func (r *Resolver) Refresh(ctx context.Context) error {
	if r.svc == nil {
		return ErrNotConfigured
	}
	tags, err := r.svc.ListTags(ctx)
	if err != nil {
		return err
	}
	r.cache.Replace(tags)
	return nil
}

// Known returns the current snapshot for rendering.
func (r *Resolver) Known() []Tag {
	return r.cache.Tags()
}

// Resolve returns the identifier for the label, creating the tag remotely if
// no case-insensitive match is known. A cache hit issues no network call, so
// retyping an existing tag with different casing or stray whitespace never
// produces a duplicate row on the remote side. On a miss the tag is created
// with the original trimmed label and the snapshot is refreshed.
func (r *Resolver) Resolve(ctx context.Context, label string) (Tag, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Tag{}, ErrEmptyLabel
	}
	if tag, ok := r.cache.Lookup(trimmed); ok {
		return tag, nil
	}
	if r.svc == nil {
		return Tag{}, ErrNotConfigured
	}
	created, err := r.svc.CreateTag(ctx, trimmed)
	if err != nil {
		return Tag{}, &TagCreateError{Label: trimmed, Err: err}
	}
	if err := r.Refresh(ctx); err != nil {
		// Keep the invariant that a second resolution of this label within
		// the session finds the tag even when the re-listing failed.
		r.cache.Add(created)
	}
	return created, nil
}
