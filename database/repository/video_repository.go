package repository

import (
	"strings"

	"quipvid/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository defines data access for video records.
type VideoRepository interface {
	FindByID(id string) (*model.Video, error)
	FindPage(page, pageSize int, sortBy model.SortField) ([]*model.Video, int64, error)
	SearchPage(query string, page, pageSize int) ([]*model.Video, int64, error)
	Create(video *model.Video) error
	Save(video *model.Video) error
	Delete(id string) error
	IncrementViews(id string) error
	Upsert(video *model.Video) error
	Count() (int64, error)

	WithTx(tx *gorm.DB) VideoRepository
	GetDB() *gorm.DB
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction.
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *videoRepository) FindByID(id string) (*model.Video, error) {
	video := &model.Video{}
	err := r.db.Model(model.Video{}).Where("id = ?", id).First(video).Error
	if err != nil {
		return nil, err
	}
	return video, nil
}

// FindPage returns one page of videos plus the total record count.
// views sorts descending, title ascending, anything else newest first.
func (r *videoRepository) FindPage(page, pageSize int, sortBy model.SortField) ([]*model.Video, int64, error) {
	var total int64
	if err := r.db.Model(model.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Model(model.Video{})
	switch sortBy {
	case model.SortByViews:
		query = query.Order("views desc")
	case model.SortByTitle:
		query = query.Order("title asc")
	default:
		query = query.Order("created_at desc")
	}

	var videos []*model.Video
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&videos).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, 0, err
	}
	return videos, total, nil
}

// SearchPage matches query case-insensitively against title, name and
// script, ordered by views descending.
func (r *videoRepository) SearchPage(query string, page, pageSize int) ([]*model.Video, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	match := func() *gorm.DB {
		return r.db.Model(model.Video{}).Where(
			"LOWER(title) LIKE ? OR LOWER(name) LIKE ? OR LOWER(script) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := match().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*model.Video
	offset := (page - 1) * pageSize
	err := match().Order("views desc").Offset(offset).Limit(pageSize).Find(&videos).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) Save(video *model.Video) error {
	return r.db.Save(video).Error
}

func (r *videoRepository) Delete(id string) error {
	return r.db.Delete(model.Video{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter atomically in the database.
func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// Upsert inserts the record or, on a duplicate id, updates the metadata
// columns (INSERT ... ON DUPLICATE KEY UPDATE semantics). created_at is
// left untouched for existing rows.
func (r *videoRepository) Upsert(video *model.Video) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"url", "name", "title", "image", "video",
			"user", "views", "poster", "script", "updated_at",
		}),
	}).Create(video).Error
}

func (r *videoRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(model.Video{}).Count(&total).Error
	return total, err
}
