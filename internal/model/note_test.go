package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNote_Validate(t *testing.T) {
	assert.ErrorIs(t, Note{Title: ""}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, Note{Title: " \t\n"}.Validate(), ErrEmptyTitle)
	assert.NoError(t, Note{Title: "Idea"}.Validate())
}

func TestNormalizeContent(t *testing.T) {
	assert.Nil(t, NormalizeContent(""))
	assert.Nil(t, NormalizeContent("   "))

	got := NormalizeContent("  body  ")
	require.NotNil(t, got)
	assert.Equal(t, "body", *got)
}

func TestNewNoteInput(t *testing.T) {
	in := NewNoteInput("  Title  ", "   ")

	assert.Equal(t, "Title", in.Title)
	assert.Nil(t, in.Content)
	assert.False(t, in.IsPublic)
}

func TestNote_Preview(t *testing.T) {
	short := Note{Content: strPtr("short")}
	assert.Equal(t, "short", short.Preview(PreviewLimit))

	long := Note{Content: strPtr(strings.Repeat("ж", PreviewLimit+5))}
	preview := long.Preview(PreviewLimit)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Equal(t, PreviewLimit+3, len([]rune(preview)))

	assert.Equal(t, "", Note{}.Preview(PreviewLimit))
}

func TestNote_CloneIsIndependent(t *testing.T) {
	original := Note{ID: "a", Title: "A", Content: strPtr("body")}
	clone := original.Clone()
	*clone.Content = "changed"

	assert.Equal(t, "body", *original.Content)
	assert.False(t, original.Equal(clone))
}

func TestNotePatch_Apply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := Note{ID: "a", Title: "Old", Content: strPtr("old"), CreatedAt: created}

	edited := EditPatch("New", nil).Apply(n)
	assert.Equal(t, "New", edited.Title)
	assert.Nil(t, edited.Content)
	assert.Equal(t, created, edited.CreatedAt)
	assert.Equal(t, "old", *n.Content, "original must not change")

	public := VisibilityPatch(true).Apply(n)
	assert.True(t, public.IsPublic)
	assert.Equal(t, "Old", public.Title)

	assert.Equal(t, []string{"content", "title"}, EditPatch("x", strPtr("y")).Columns())
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	notes := []Note{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}

	SortNewestFirst(notes)

	assert.Equal(t, "new", notes[0].ID)
	assert.Equal(t, "mid", notes[1].ID)
	assert.Equal(t, "old", notes[2].ID)
}
