package front

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"quipvid/database/model"
	"quipvid/util/common"
	"quipvid/web/entity"
)

const clientTimeout = 5 * time.Second

// VideoProvider is what the front end needs from the metadata API.
type VideoProvider interface {
	ListVideos(page int, pageSize int, sortBy string) (*entity.PaginatedVideos, error)
	SearchVideos(query string, page int, pageSize int) (*entity.PaginatedVideos, error)
	GetVideo(id string) (*model.Video, error)
}

// APIClient talks to the metadata API over HTTP.
type APIClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client: &fasthttp.Client{
			ReadTimeout:  clientTimeout,
			WriteTimeout: clientTimeout,
		},
	}
}

func (c *APIClient) get(path string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.client.DoTimeout(req, resp, clientTimeout); err != nil {
		return common.Wrapf("front: api", err, "GET %s", path)
	}
	if resp.StatusCode() == fasthttp.StatusNotFound {
		return common.ErrVideoNotFound
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return common.NewErrorf("front: api GET %s: status %d", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return common.Wrapf("front: api", err, "decode %s", path)
	}
	return nil
}

func (c *APIClient) ListVideos(page int, pageSize int, sortBy string) (*entity.PaginatedVideos, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	var result entity.PaginatedVideos
	if err := c.get("/videos?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) SearchVideos(query string, page int, pageSize int) (*entity.PaginatedVideos, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	var result entity.PaginatedVideos
	if err := c.get("/videos/search?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) GetVideo(id string) (*model.Video, error) {
	var video model.Video
	if err := c.get(fmt.Sprintf("/videos/%s", url.PathEscape(id)), &video); err != nil {
		return nil, err
	}
	return &video, nil
}
