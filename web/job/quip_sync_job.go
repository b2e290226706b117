package job

import (
	"quipvid/logger"
	"quipvid/web/service"
)

// QuipSyncJob pulls the remote quips feed into the local database. It is
// scheduled through cron, so it only implements Run.
type QuipSyncJob struct {
	ingestService *service.IngestService
}

func NewQuipSyncJob(ingestService *service.IngestService) *QuipSyncJob {
	return &QuipSyncJob{
		ingestService: ingestService,
	}
}

func (j *QuipSyncJob) Run() {
	result, err := j.ingestService.Sync()
	if err != nil {
		logger.Errorf("quip sync failed: %v", err)
		return
	}
	logger.Infof("quip sync done: fetched %d, upserted %d, skipped %d",
		result.Fetched, result.Upserted, result.Skipped)
}
