package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"quipvid/database"
	"quipvid/database/model"
	"quipvid/database/repository"
	"quipvid/logger"
	"quipvid/util/common"
)

const ingestTimeout = 15 * time.Second

// quipRecord mirrors one entry of the remote quips feed. Unknown keys
// are ignored; missing keys stay at their zero value.
type quipRecord struct {
	Id     string  `json:"id"`
	Url    string  `json:"url"`
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Image  *string `json:"image"`
	Video  *string `json:"video"`
	User   *string `json:"user"`
	Views  int     `json:"views"`
	Poster *string `json:"poster"`
	Script *string `json:"script"`
}

// IngestResult summarises one synchronisation run.
type IngestResult struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Skipped  int `json:"skipped"`
}

type IngestService struct {
	videoRepo      repository.VideoRepository
	settingService *SettingService
	client         *fasthttp.Client
}

func NewIngestService(videoRepo repository.VideoRepository, settingService *SettingService) *IngestService {
	return &IngestService{
		videoRepo:      videoRepo,
		settingService: settingService,
		client: &fasthttp.Client{
			ReadTimeout:  ingestTimeout,
			WriteTimeout: ingestTimeout,
		},
	}
}

func (s *IngestService) getRepo() repository.VideoRepository {
	if s.videoRepo == nil {
		s.videoRepo = repository.NewVideoRepository(database.GetDB())
	}
	return s.videoRepo
}

func (s *IngestService) apiURL() (string, error) {
	if s.settingService == nil {
		s.settingService = &SettingService{}
	}
	return s.settingService.GetIngestAPIURL()
}

// fetchQuips downloads the remote feed and decodes it as a JSON array.
func (s *IngestService) fetchQuips(url string) ([]quipRecord, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if s.client == nil {
		s.client = &fasthttp.Client{
			ReadTimeout:  ingestTimeout,
			WriteTimeout: ingestTimeout,
		}
	}
	if err := s.client.DoTimeout(req, resp, ingestTimeout); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIngestUpstream, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrIngestUpstream, resp.StatusCode())
	}

	body := strings.TrimSpace(string(resp.Body()))
	if !strings.HasPrefix(body, "[") {
		return nil, common.ErrIngestNotArray
	}
	var records []quipRecord
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIngestNotArray, err)
	}
	return records, nil
}

func (r *quipRecord) toVideo(now time.Time) *model.Video {
	return &model.Video{
		Id:        r.Id,
		Url:       r.Url,
		Name:      r.Name,
		Title:     r.Title,
		Image:     r.Image,
		Video:     r.Video,
		User:      r.User,
		Views:     r.Views,
		Poster:    r.Poster,
		Script:    r.Script,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Sync fetches the remote feed and upserts every record in a single
// transaction. Malformed rows are skipped rather than failing the run.
func (s *IngestService) Sync() (*IngestResult, error) {
	url, err := s.apiURL()
	if err != nil {
		return nil, err
	}

	records, err := s.fetchQuips(url)
	if err != nil {
		return nil, err
	}

	result := &IngestResult{Fetched: len(records)}
	now := time.Now().UTC()

	err = database.WithTx(func(tx *gorm.DB) error {
		txRepo := s.getRepo().WithTx(tx)
		for i := range records {
			record := &records[i]
			if record.Id == "" {
				logger.Warningf("ingest: skip record %d: missing id", i)
				result.Skipped++
				continue
			}
			if err := txRepo.Upsert(record.toVideo(now)); err != nil {
				logger.Warningf("ingest: skip record %s: %v", record.Id, err)
				result.Skipped++
				continue
			}
			result.Upserted++
		}
		return nil
	})
	if err != nil {
		return nil, common.Wrap("ingest: sync", err)
	}

	logger.Infof("ingest: fetched %d, upserted %d, skipped %d",
		result.Fetched, result.Upserted, result.Skipped)
	return result, nil
}
