package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quipvid/database"
	"quipvid/database/repository"
	"quipvid/logger"
	"quipvid/util/common"
)

func setupIngestService(t *testing.T, payload string, status int) (*IngestService, *VideoService) {
	t.Helper()
	err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	settingService := NewSettingService(repository.NewSettingRepository(database.GetDB()))
	require.NoError(t, settingService.setString("ingestApiUrl", server.URL))

	videoRepo := repository.NewVideoRepository(database.GetDB())
	return NewIngestService(videoRepo, settingService),
		NewVideoService(videoRepo, settingService)
}

func TestIngestSync(t *testing.T) {
	payload := `[
		{"id": "aaa", "url": "https://example.com/v/aaa", "name": "a.mp4", "title": "Alpha", "views": 7},
		{"id": "bbb", "url": "https://example.com/v/bbb", "name": "b.mp4", "title": "Beta", "poster": "b.jpg"}
	]`
	svc, videos := setupIngestService(t, payload, http.StatusOK)

	result, err := svc.Sync()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Skipped)

	got, err := videos.GetVideo("aaa")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title)
	assert.Equal(t, 8, got.Views)
}

func TestIngestSyncUpsertsExisting(t *testing.T) {
	payload := `[{"id": "aaa", "url": "https://example.com/v/aaa", "name": "a.mp4", "title": "Renamed", "views": 3}]`
	svc, videos := setupIngestService(t, payload, http.StatusOK)

	_, err := svc.Sync()
	require.NoError(t, err)

	result, err := svc.Sync()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)

	count, err := videos.CountVideos()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := videos.GetVideo("aaa")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestIngestSyncSkipsRecordsWithoutId(t *testing.T) {
	payload := `[
		{"id": "", "url": "https://example.com/v/x", "name": "x.mp4", "title": "No Id"},
		{"id": "ok", "url": "https://example.com/v/ok", "name": "ok.mp4", "title": "Fine"}
	]`
	svc, videos := setupIngestService(t, payload, http.StatusOK)

	result, err := svc.Sync()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 1, result.Skipped)

	count, err := videos.CountVideos()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	logs := logger.GetLogs(10, "warning")
	require.NotEmpty(t, logs)
	var warned bool
	for _, line := range logs {
		if strings.Contains(line, "missing id") {
			warned = true
			break
		}
	}
	assert.True(t, warned, "expected a warning for the id-less record")
}

func TestIngestSyncRejectsNonArray(t *testing.T) {
	svc, _ := setupIngestService(t, `{"detail": "nope"}`, http.StatusOK)

	_, err := svc.Sync()
	assert.ErrorIs(t, err, common.ErrIngestNotArray)
}

func TestIngestSyncUpstreamError(t *testing.T) {
	svc, _ := setupIngestService(t, "oops", http.StatusBadGateway)

	_, err := svc.Sync()
	assert.ErrorIs(t, err, common.ErrIngestUpstream)
}
