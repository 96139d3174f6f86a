package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := execute(t, "", "hash-password", "--cost", "4", "s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))

	out, err = execute(t, "from-stdin\n", "hash-password", "--cost=4")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("from-stdin")))

	_, err = execute(t, "", "hash-password")
	assert.Error(t, err)

	_, err = execute(t, "", "hash-password", "a", "b")
	assert.Error(t, err)
}

type listOnlyGallery struct {
	repository.GalleryRepository
	items  []models.GalleryImage
	filter repository.GalleryFilter
}

func (g *listOnlyGallery) List(_ context.Context, f repository.GalleryFilter, _ repository.Page) (repository.ListResult[models.GalleryImage], error) {
	g.filter = f
	return repository.ListResult[models.GalleryImage]{Items: g.items, Total: int64(len(g.items)) + 10}, nil
}

func TestGalleryStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	img := func(title string, ago time.Duration) models.GalleryImage {
		g := models.GalleryImage{Title: title, ImageURL: "https://cdn.test/" + title + ".jpg"}
		g.CreatedAt = now.Add(-ago)
		return g
	}
	repo := &listOnlyGallery{items: []models.GalleryImage{
		img("old", 72*time.Hour), img("newest", 0), img("mid", 24*time.Hour),
	}}

	stats, err := collectGalleryStats(context.Background(), repo, 2)
	require.NoError(t, err)
	assert.True(t, repo.filter.IncludeHidden)
	assert.Equal(t, int64(13), stats.Total)
	require.Len(t, stats.Latest, 2)
	assert.Equal(t, "newest", stats.Latest[0].Title)
	assert.Equal(t, "mid", stats.Latest[1].Title)

	var out bytes.Buffer
	require.NoError(t, printGalleryStats(&out, stats))
	assert.Contains(t, out.String(), "Total images in gallery: 13")
	assert.Contains(t, out.String(), "https://cdn.test/newest.jpg")
}
