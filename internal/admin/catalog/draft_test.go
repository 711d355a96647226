package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/catalog"
)

func TestDraftTagSetSemantics(t *testing.T) {
	t.Parallel()

	var d catalog.Draft
	d.AddTag(7)
	d.AddTag(3)
	d.AddTag(7)
	require.Equal(t, []int64{7, 3}, d.Tags, "duplicate add is a no-op, order preserved")

	d.RemoveTag(99)
	require.Equal(t, []int64{7, 3}, d.Tags, "removing an absent id is a no-op")

	d.RemoveTag(7)
	require.Equal(t, []int64{3}, d.Tags)
}

func TestDraftVariantRemovePreservesOrder(t *testing.T) {
	t.Parallel()

	var d catalog.Draft
	for i := 0; i < 3; i++ {
		d.AddVariant()
	}
	d.SetVariantField(0, "sku", "A")
	d.SetVariantField(1, "sku", "B")
	d.SetVariantField(2, "sku", "C")

	d.RemoveVariant(1)

	require.Len(t, d.Variants, 2)
	require.Equal(t, "A", d.Variants[0].SKU)
	require.Equal(t, "C", d.Variants[1].SKU)
}

func TestDraftVariantFieldEditByIndex(t *testing.T) {
	t.Parallel()

	var d catalog.Draft
	d.AddVariant()
	d.SetVariantField(0, "price", "12.50")
	d.SetVariantField(0, "color", "navy")
	d.SetVariantField(5, "price", "99.99")
	d.SetVariantField(0, "bogus", "x")

	require.Equal(t, "12.50", d.Variants[0].Price)
	require.Equal(t, "navy", d.Variants[0].Color)
}

func TestDraftMediaAppendKeepsDuplicates(t *testing.T) {
	t.Parallel()

	var d catalog.Draft
	f := catalog.MediaFile{Name: "hero.jpg", Content: []byte{1}}
	d.AddImages(f)
	d.AddImages(f)
	require.Len(t, d.Images, 2, "identical names are both kept and both uploaded")
}

func TestDraftCloneIsIndependent(t *testing.T) {
	t.Parallel()

	var d catalog.Draft
	d.Name = "Mug"
	d.AddTag(1)
	d.AddVariant()
	d.AddImages(catalog.MediaFile{Name: "a.png"})

	snap := d.Clone()
	d.Reset()

	require.Empty(t, d.Tags)
	require.Equal(t, "Mug", snap.Name)
	require.Equal(t, []int64{1}, snap.Tags)
	require.Len(t, snap.Images, 1)
}

func TestDraftStorePerSession(t *testing.T) {
	t.Parallel()

	store := catalog.NewDraftStore()
	a := store.Get("sess-a")
	a.Name = "Tote"

	require.Equal(t, "Tote", store.Get("sess-a").Name)
	require.Empty(t, store.Get("sess-b").Name)

	store.Reset("sess-a")
	require.Empty(t, store.Get("sess-a").Name)
}
