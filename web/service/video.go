package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"quipvid/database"
	"quipvid/database/model"
	"quipvid/database/repository"
	"quipvid/util/common"
	"quipvid/web/entity"
)

// VideoCreateForm carries the fields accepted when registering a video.
// Url, Name and Title are required; the rest are optional.
type VideoCreateForm struct {
	Url    string  `json:"url" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	Title  string  `json:"title" binding:"required"`
	Image  *string `json:"image"`
	Video  *string `json:"video"`
	User   *string `json:"user"`
	Poster *string `json:"poster"`
	Script *string `json:"script"`
}

// VideoUpdateForm carries a partial update. Absent fields stay untouched;
// fields set to the empty string are cleared to NULL where nullable.
type VideoUpdateForm struct {
	Url    *string `json:"url"`
	Name   *string `json:"name"`
	Title  *string `json:"title"`
	Image  *string `json:"image"`
	Video  *string `json:"video"`
	User   *string `json:"user"`
	Poster *string `json:"poster"`
	Script *string `json:"script"`
}

func (f *VideoUpdateForm) empty() bool {
	return f.Url == nil && f.Name == nil && f.Title == nil &&
		f.Image == nil && f.Video == nil && f.User == nil &&
		f.Poster == nil && f.Script == nil
}

type VideoService struct {
	videoRepo      repository.VideoRepository
	settingService *SettingService
}

func NewVideoService(videoRepo repository.VideoRepository, settingService *SettingService) *VideoService {
	return &VideoService{
		videoRepo:      videoRepo,
		settingService: settingService,
	}
}

func (s *VideoService) getRepo() repository.VideoRepository {
	if s.videoRepo == nil {
		s.videoRepo = repository.NewVideoRepository(database.GetDB())
	}
	return s.videoRepo
}

func (s *VideoService) defaultPageSize() int {
	if s.settingService == nil {
		return 20
	}
	size, err := s.settingService.GetPageSize()
	if err != nil {
		return 20
	}
	return size
}

func (s *VideoService) paginate(videos []*model.Video, total int64, page int, pageSize int) *entity.PaginatedVideos {
	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	if videos == nil {
		videos = []*model.Video{}
	}
	return &entity.PaginatedVideos{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Videos:     videos,
	}
}

// ListVideos returns one page of videos ordered per sortBy.
func (s *VideoService) ListVideos(page int, pageSize int, sortBy model.SortField) (*entity.PaginatedVideos, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = s.defaultPageSize()
	}
	if !sortBy.Valid() {
		sortBy = model.SortByCreatedAt
	}
	videos, total, err := s.getRepo().FindPage(page, pageSize, sortBy)
	if err != nil {
		return nil, common.Wrap("video: list", err)
	}
	return s.paginate(videos, total, page, pageSize), nil
}

// SearchVideos returns one page of videos whose title, name or script
// matches the query, most viewed first.
func (s *VideoService) SearchVideos(query string, page int, pageSize int) (*entity.PaginatedVideos, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = s.defaultPageSize()
	}
	videos, total, err := s.getRepo().SearchPage(strings.TrimSpace(query), page, pageSize)
	if err != nil {
		return nil, common.Wrap("video: search", err)
	}
	return s.paginate(videos, total, page, pageSize), nil
}

// GetVideo fetches one video by id and counts the access as a view.
func (s *VideoService) GetVideo(id string) (*model.Video, error) {
	video, err := s.getRepo().FindByID(id)
	if database.IsNotFound(err) {
		return nil, common.ErrVideoNotFound
	} else if err != nil {
		return nil, common.Wrap("video: get", err)
	}
	if err := s.getRepo().IncrementViews(id); err != nil {
		return nil, common.Wrap("video: count view", err)
	}
	video.Views++
	return video, nil
}

func (s *VideoService) CreateVideo(form *VideoCreateForm) (*model.Video, error) {
	now := time.Now().UTC()
	video := &model.Video{
		Id:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Url:       form.Url,
		Name:      form.Name,
		Title:     form.Title,
		Image:     form.Image,
		Video:     form.Video,
		User:      form.User,
		Poster:    form.Poster,
		Script:    form.Script,
		Views:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.getRepo().Create(video); err != nil {
		return nil, common.Wrap("video: create", err)
	}
	return video, nil
}

// UpdateVideo applies a partial update. An empty string on a nullable
// column clears it.
func (s *VideoService) UpdateVideo(id string, form *VideoUpdateForm) (*model.Video, error) {
	if form.empty() {
		return nil, common.ErrNoFieldsToUpdate
	}

	video, err := s.getRepo().FindByID(id)
	if database.IsNotFound(err) {
		return nil, common.ErrVideoNotFound
	} else if err != nil {
		return nil, common.Wrap("video: update", err)
	}

	if form.Url != nil {
		video.Url = *form.Url
	}
	if form.Name != nil {
		video.Name = *form.Name
	}
	if form.Title != nil {
		video.Title = *form.Title
	}
	video.Image = applyNullable(video.Image, form.Image)
	video.Video = applyNullable(video.Video, form.Video)
	video.User = applyNullable(video.User, form.User)
	video.Poster = applyNullable(video.Poster, form.Poster)
	video.Script = applyNullable(video.Script, form.Script)
	video.UpdatedAt = time.Now().UTC()

	if err := s.getRepo().Save(video); err != nil {
		return nil, common.Wrap("video: update", err)
	}
	return video, nil
}

func applyNullable(current *string, incoming *string) *string {
	if incoming == nil {
		return current
	}
	if *incoming == "" {
		return nil
	}
	return incoming
}

func (s *VideoService) DeleteVideo(id string) error {
	if _, err := s.getRepo().FindByID(id); database.IsNotFound(err) {
		return common.ErrVideoNotFound
	} else if err != nil {
		return common.Wrap("video: delete", err)
	}
	return s.getRepo().Delete(id)
}

func (s *VideoService) CountVideos() (int64, error) {
	return s.getRepo().Count()
}
