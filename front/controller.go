package front

import (
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"quipvid/database/model"
	"quipvid/logger"
	"quipvid/util/common"
)

const sectionSize = 12

// Controller renders the public library pages from API data.
type Controller struct {
	provider VideoProvider
}

func NewController(g *gin.RouterGroup, provider VideoProvider) *Controller {
	a := &Controller{
		provider: provider,
	}
	a.initRouter(g)
	return a
}

func (a *Controller) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/watch", a.watch)
	g.GET("/watch/qr", a.watchQR)
}

// randomSubset picks up to n videos without repeats.
func randomSubset(videos []*model.Video, n int) []*model.Video {
	if len(videos) <= n {
		shuffled := make([]*model.Video, len(videos))
		copy(shuffled, videos)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled
	}
	picks := rand.Perm(len(videos))[:n]
	subset := make([]*model.Video, 0, n)
	for _, i := range picks {
		subset = append(subset, videos[i])
	}
	return subset
}

// queryPage reads the catalog page number, defaulting to the first page.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (a *Controller) index(c *gin.Context) {
	query := c.Query("q")
	page := queryPage(c)

	var popular, featured, all []*model.Video
	var totalPages int64
	var loadErr string

	if query != "" {
		results, err := a.provider.SearchVideos(query, page, sectionSize)
		if err != nil {
			logger.Warning("front: search failed:", err)
			loadErr = "Unable to load videos"
		} else {
			all = results.Videos
			totalPages = results.TotalPages
			popular = all
			featured = randomSubset(all, sectionSize)
		}
	} else {
		popularPage, err := a.provider.ListVideos(1, sectionSize, "views")
		if err != nil {
			logger.Warning("front: load popular failed:", err)
			loadErr = "Unable to load videos"
		} else {
			popular = popularPage.Videos
		}

		featuredPool, err := a.provider.ListVideos(1, 100, "")
		if err != nil {
			logger.Warning("front: load featured failed:", err)
			loadErr = "Unable to load videos"
		} else {
			featured = randomSubset(featuredPool.Videos, sectionSize)
		}

		catalogPage, err := a.provider.ListVideos(page, sectionSize, "")
		if err != nil {
			logger.Warning("front: load videos failed:", err)
			loadErr = "Unable to load videos"
		} else {
			all = catalogPage.Videos
			totalPages = catalogPage.TotalPages
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"query":      query,
		"popular":    popular,
		"featured":   featured,
		"all":        all,
		"page":       page,
		"totalPages": totalPages,
		"hasPrev":    page > 1,
		"hasNext":    int64(page) < totalPages,
		"prevPage":   page - 1,
		"nextPage":   page + 1,
		"error":      loadErr,
	})
}

func (a *Controller) watch(c *gin.Context) {
	id := c.Query("v")
	if id == "" {
		c.HTML(http.StatusBadRequest, "watch.html", gin.H{
			"error": "No video specified",
		})
		return
	}

	video, err := a.provider.GetVideo(id)
	if err != nil {
		status := http.StatusBadGateway
		msg := "Failed to load video"
		if common.IsNotFoundError(err) {
			status = http.StatusNotFound
			msg = "Video not found"
		} else {
			logger.Warning("front: load video failed:", err)
		}
		c.HTML(status, "watch.html", gin.H{
			"error": msg,
		})
		return
	}

	c.HTML(http.StatusOK, "watch.html", gin.H{
		"video": video,
	})
}

// watchQR renders a QR code pointing at the watch page, for sharing.
func (a *Controller) watchQR(c *gin.Context) {
	id := c.Query("v")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	target := scheme + "://" + c.Request.Host + "/watch?v=" + url.QueryEscape(id)

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		logger.Warning("front: qr encode failed:", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
