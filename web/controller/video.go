package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quipvid/database/model"
	"quipvid/logger"
	"quipvid/util/common"
	"quipvid/web/service"
)

// VideoController serves the public video metadata API.
type VideoController struct {
	videoService *service.VideoService
}

func NewVideoController(g *gin.RouterGroup, videoService *service.VideoService) *VideoController {
	a := &VideoController{
		videoService: videoService,
	}
	a.initRouter(g)
	return a
}

func (a *VideoController) initRouter(g *gin.RouterGroup) {
	g.GET("/videos", a.listVideos)
	g.GET("/videos/search", a.searchVideos)
	g.GET("/videos/:id", a.getVideo)
	g.POST("/videos", a.createVideo)
	g.PUT("/videos/:id", a.updateVideo)
	g.DELETE("/videos/:id", a.deleteVideo)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func (a *VideoController) listVideos(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 0)
	sortBy := model.SortField(c.Query("sort_by"))

	result, err := a.videoService.ListVideos(page, pageSize, sortBy)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *VideoController) searchVideos(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		jsonDetail(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 0)

	result, err := a.videoService.SearchVideos(q, page, pageSize)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *VideoController) getVideo(c *gin.Context) {
	video, err := a.videoService.GetVideo(c.Param("id"))
	if err != nil {
		a.videoError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (a *VideoController) createVideo(c *gin.Context) {
	var form service.VideoCreateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonDetail(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	video, err := a.videoService.CreateVideo(&form)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (a *VideoController) updateVideo(c *gin.Context) {
	var form service.VideoUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonDetail(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	video, err := a.videoService.UpdateVideo(c.Param("id"), &form)
	if err != nil {
		a.videoError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (a *VideoController) deleteVideo(c *gin.Context) {
	if err := a.videoService.DeleteVideo(c.Param("id")); err != nil {
		a.videoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *VideoController) videoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrVideoNotFound):
		jsonDetail(c, http.StatusNotFound, common.ErrVideoNotFound.Error())
	case errors.Is(err, common.ErrNoFieldsToUpdate):
		jsonDetail(c, http.StatusBadRequest, common.ErrNoFieldsToUpdate.Error())
	default:
		a.serverError(c, err)
	}
}

func (a *VideoController) serverError(c *gin.Context, err error) {
	logger.Error("video api error:", err)
	jsonDetail(c, http.StatusInternalServerError, "Internal server error")
}
