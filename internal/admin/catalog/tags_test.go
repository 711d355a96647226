package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/catalog"
)

// scriptedService lets each test control the remote behaviour and count calls.
type scriptedService struct {
	catalog.Service

	tags       []catalog.Tag
	listCalls  int
	createErr  error
	createCall int
	nextID     int64
}

func (s *scriptedService) ListTags(ctx context.Context) ([]catalog.Tag, error) {
	s.listCalls++
	return append([]catalog.Tag(nil), s.tags...), nil
}

func (s *scriptedService) CreateTag(ctx context.Context, name string) (catalog.Tag, error) {
	s.createCall++
	if s.createErr != nil {
		return catalog.Tag{}, s.createErr
	}
	if s.nextID == 0 {
		s.nextID = int64(len(s.tags)) + 1
	}
	tag := catalog.Tag{ID: s.nextID, Name: name}
	s.nextID++
	s.tags = append(s.tags, tag)
	return tag, nil
}

func TestResolveExistingTagIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{tags: []catalog.Tag{{ID: 7, Name: "summer"}}}
	resolver := catalog.NewResolver(svc, catalog.NewTagCache())
	require.NoError(t, resolver.Refresh(context.Background()))

	tag, err := resolver.Resolve(context.Background(), "Summer")
	require.NoError(t, err)
	require.Equal(t, int64(7), tag.ID)

	tag, err = resolver.Resolve(context.Background(), "  SUMMER  ")
	require.NoError(t, err)
	require.Equal(t, int64(7), tag.ID)

	require.Zero(t, svc.createCall, "cache hits must not issue create calls")
}

func TestResolveCreatesMissingTagOnce(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{tags: []catalog.Tag{{ID: 1, Name: "sale"}}}
	resolver := catalog.NewResolver(svc, catalog.NewTagCache())
	require.NoError(t, resolver.Refresh(context.Background()))

	created, err := resolver.Resolve(context.Background(), " Winter ")
	require.NoError(t, err)
	require.Equal(t, "Winter", created.Name, "create uses the original trimmed label, not the folded one")
	require.Equal(t, 1, svc.createCall)

	// Differing only in case and whitespace: same identifier, no second create.
	again, err := resolver.Resolve(context.Background(), "winter")
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)
	require.Equal(t, 1, svc.createCall)
}

func TestResolveRefreshesSnapshotAfterCreate(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{}
	resolver := catalog.NewResolver(svc, catalog.NewTagCache())
	require.NoError(t, resolver.Refresh(context.Background()))
	listed := svc.listCalls

	_, err := resolver.Resolve(context.Background(), "festival")
	require.NoError(t, err)
	require.Greater(t, svc.listCalls, listed, "successful creation must refresh the known-tags snapshot")
	require.Len(t, resolver.Known(), 1)
}

func TestResolveCreateFailureCarriesLabel(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{createErr: errors.New("name: tag with this name already exists")}
	resolver := catalog.NewResolver(svc, catalog.NewTagCache())

	_, err := resolver.Resolve(context.Background(), "Spring")
	require.Error(t, err)

	var tagErr *catalog.TagCreateError
	require.ErrorAs(t, err, &tagErr)
	require.Equal(t, "Spring", tagErr.Label)
}

func TestResolveEmptyLabel(t *testing.T) {
	t.Parallel()

	resolver := catalog.NewResolver(&scriptedService{}, catalog.NewTagCache())
	_, err := resolver.Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, catalog.ErrEmptyLabel)
}
