package front

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quipvid/database/model"
	"quipvid/util/common"
	"quipvid/web/entity"
)

type stubProvider struct {
	videos []*model.Video
}

func (p *stubProvider) page(videos []*model.Video) *entity.PaginatedVideos {
	return &entity.PaginatedVideos{
		Total:      int64(len(videos)),
		Page:       1,
		PageSize:   len(videos),
		TotalPages: 1,
		Videos:     videos,
	}
}

func (p *stubProvider) ListVideos(page int, pageSize int, sortBy string) (*entity.PaginatedVideos, error) {
	return p.page(p.videos), nil
}

func (p *stubProvider) SearchVideos(query string, page int, pageSize int) (*entity.PaginatedVideos, error) {
	var matched []*model.Video
	for _, v := range p.videos {
		if v.Title == query {
			matched = append(matched, v)
		}
	}
	return p.page(matched), nil
}

func (p *stubProvider) GetVideo(id string) (*model.Video, error) {
	for _, v := range p.videos {
		if v.Id == id {
			return v, nil
		}
	}
	return nil, common.ErrVideoNotFound
}

func testVideo(id, title string) *model.Video {
	poster := "https://example.com/" + id + ".jpg"
	return &model.Video{
		Id:     id,
		Url:    "https://example.com/v/" + id,
		Name:   id + ".mp4",
		Title:  title,
		Poster: &poster,
		Views:  3,
	}
}

func setupFrontRouter(t *testing.T, videos ...*model.Video) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := NewServer(&stubProvider{videos: videos})
	engine, err := server.initRouter()
	require.NoError(t, err)
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIndexRendersSections(t *testing.T) {
	engine := setupFrontRouter(t, testVideo("a1", "Alpha"), testVideo("b2", "Beta"))

	w := get(engine, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "POPULAR")
	assert.Contains(t, body, "EVERCHANGING FEATURED")
	assert.Contains(t, body, "MOVIE TITLE")
	assert.Contains(t, body, "Alpha")
	assert.Contains(t, body, "/watch?v=a1")
}

type listCall struct {
	page     int
	pageSize int
	sortBy   string
}

// pagingProvider records ListVideos calls and reports a fixed page count.
type pagingProvider struct {
	stubProvider
	listCalls  []listCall
	totalPages int64
}

func (p *pagingProvider) ListVideos(page int, pageSize int, sortBy string) (*entity.PaginatedVideos, error) {
	p.listCalls = append(p.listCalls, listCall{page: page, pageSize: pageSize, sortBy: sortBy})
	out := p.page(p.videos)
	out.Page = page
	out.TotalPages = p.totalPages
	return out, nil
}

func TestIndexForwardsPageParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := &pagingProvider{
		stubProvider: stubProvider{videos: []*model.Video{testVideo("a1", "Alpha")}},
		totalPages:   3,
	}
	server := NewServer(provider)
	engine, err := server.initRouter()
	require.NoError(t, err)

	w := get(engine, "/?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var catalog *listCall
	for i := range provider.listCalls {
		call := &provider.listCalls[i]
		if call.sortBy == "" && call.pageSize == sectionSize {
			catalog = call
		}
	}
	require.NotNil(t, catalog)
	assert.Equal(t, 2, catalog.page)

	body := w.Body.String()
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, "page=1")
	assert.Contains(t, body, "page=3")
}

func TestIndexBadPageDefaultsToFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := &pagingProvider{
		stubProvider: stubProvider{videos: []*model.Video{testVideo("a1", "Alpha")}},
		totalPages:   1,
	}
	server := NewServer(provider)
	engine, err := server.initRouter()
	require.NoError(t, err)

	w := get(engine, "/?page=banana")
	require.Equal(t, http.StatusOK, w.Code)

	for _, call := range provider.listCalls {
		if call.sortBy == "" && call.pageSize == sectionSize {
			assert.Equal(t, 1, call.page)
		}
	}
	assert.NotContains(t, w.Body.String(), `<nav class="pager">`)
}

func TestIndexSearchFilters(t *testing.T) {
	engine := setupFrontRouter(t, testVideo("a1", "Alpha"), testVideo("b2", "Beta"))

	w := get(engine, "/?q=Alpha")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Alpha")
	assert.NotContains(t, body, "Beta")
}

func TestWatchPage(t *testing.T) {
	engine := setupFrontRouter(t, testVideo("a1", "Alpha"))

	w := get(engine, "/watch?v=a1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alpha")
	assert.Contains(t, w.Body.String(), "/watch/qr?v=a1")
}

func TestWatchPageNotFound(t *testing.T) {
	engine := setupFrontRouter(t)

	w := get(engine, "/watch?v=missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Video not found")
}

func TestWatchPageMissingParam(t *testing.T) {
	engine := setupFrontRouter(t)

	w := get(engine, "/watch")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No video specified")
}

func TestWatchQRCode(t *testing.T) {
	engine := setupFrontRouter(t, testVideo("a1", "Alpha"))

	w := get(engine, "/watch/qr?v=a1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = get(engine, "/watch/qr")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRandomSubset(t *testing.T) {
	videos := []*model.Video{
		testVideo("a", "A"), testVideo("b", "B"), testVideo("c", "C"),
	}

	subset := randomSubset(videos, 2)
	assert.Len(t, subset, 2)
	assert.NotSame(t, subset[0], subset[1])

	all := randomSubset(videos, 10)
	assert.Len(t, all, 3)
}
