package repository

import (
	"testing"
	"time"

	"quipvid/database"
	"quipvid/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	err := database.InitDB(":memory:")
	require.NoError(t, err)
}

func strptr(s string) *string {
	return &s
}

func seedVideos(t *testing.T, repo VideoRepository) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []*model.Video{
		{Id: "a1", Url: "http://e/1", Name: "clip-one", Title: "Alpha", Views: 5, Script: strptr("You talking to me?"), CreatedAt: base},
		{Id: "b2", Url: "http://e/2", Name: "clip-two", Title: "Bravo", Views: 50, CreatedAt: base.Add(time.Hour)},
		{Id: "c3", Url: "http://e/3", Name: "clip-three", Title: "Charlie", Views: 20, Script: strptr("I'll be back"), CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, v := range records {
		require.NoError(t, repo.Create(v))
	}
}

func TestVideoRepository_CRUD(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())

	video := &model.Video{
		Id:     "vid-1",
		Url:    "http://example.com/q/1",
		Name:   "taxi-driver-talking",
		Title:  "Taxi Driver",
		Script: strptr("You talking to me?"),
	}
	require.NoError(t, repo.Create(video))

	found, err := repo.FindByID("vid-1")
	require.NoError(t, err)
	assert.Equal(t, "Taxi Driver", found.Title)
	assert.Equal(t, 0, found.Views)
	assert.False(t, found.CreatedAt.IsZero())

	found.Title = "Taxi Driver (1976)"
	require.NoError(t, repo.Save(found))

	updated, err := repo.FindByID("vid-1")
	require.NoError(t, err)
	assert.Equal(t, "Taxi Driver (1976)", updated.Title)

	require.NoError(t, repo.Delete("vid-1"))
	_, err = repo.FindByID("vid-1")
	assert.True(t, database.IsNotFound(err))
}

func TestVideoRepository_FindPageSorting(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())
	seedVideos(t, repo)

	// Default: newest first.
	videos, total, err := repo.FindPage(1, 20, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, videos, 3)
	assert.Equal(t, "c3", videos[0].Id)

	// views desc.
	videos, _, err = repo.FindPage(1, 20, model.SortByViews)
	require.NoError(t, err)
	assert.Equal(t, "b2", videos[0].Id)
	assert.Equal(t, "a1", videos[2].Id)

	// title asc.
	videos, _, err = repo.FindPage(1, 20, model.SortByTitle)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", videos[0].Title)
}

func TestVideoRepository_FindPagePagination(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())
	seedVideos(t, repo)

	videos, total, err := repo.FindPage(2, 2, model.SortByTitle)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, videos, 1)
	assert.Equal(t, "Charlie", videos[0].Title)

	// Pages past the end are empty, not an error.
	videos, _, err = repo.FindPage(5, 2, model.SortByTitle)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestVideoRepository_SearchPage(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())
	seedVideos(t, repo)

	// Case-insensitive title match.
	videos, total, err := repo.SearchPage("ALPHA", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, videos, 1)
	assert.Equal(t, "a1", videos[0].Id)

	// Script match.
	videos, _, err = repo.SearchPage("be back", 1, 20)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "c3", videos[0].Id)

	// Name match, ordered views desc.
	videos, total, err = repo.SearchPage("clip", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, "b2", videos[0].Id)

	videos, total, err = repo.SearchPage("nothing-matches", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, videos)
}

func TestVideoRepository_IncrementViews(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())
	seedVideos(t, repo)

	require.NoError(t, repo.IncrementViews("a1"))
	require.NoError(t, repo.IncrementViews("a1"))

	found, err := repo.FindByID("a1")
	require.NoError(t, err)
	assert.Equal(t, 7, found.Views)
}

func TestVideoRepository_Upsert(t *testing.T) {
	setupTestDB(t)
	repo := NewVideoRepository(database.GetDB())

	v := &model.Video{Id: "up1", Url: "http://e/old", Name: "n", Title: "Old", Views: 3}
	require.NoError(t, repo.Upsert(v))

	created, err := repo.FindByID("up1")
	require.NoError(t, err)
	createdAt := created.CreatedAt

	// Same id again: metadata updates, row count stays at one.
	v2 := &model.Video{Id: "up1", Url: "http://e/new", Name: "n", Title: "New", Views: 9}
	require.NoError(t, repo.Upsert(v2))

	total, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	updated, err := repo.FindByID("up1")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "http://e/new", updated.Url)
	assert.Equal(t, 9, updated.Views)
	assert.Equal(t, createdAt, updated.CreatedAt)
}
