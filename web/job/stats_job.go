package job

import (
	"context"
	"sync"
	"time"

	"quipvid/logger"
	"quipvid/web/service"
)

const statsInterval = 10 * time.Minute

// StatsJob periodically logs a host/application status line.
type StatsJob struct {
	serverService *service.ServerService

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStatsJob(serverService *service.ServerService) *StatsJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &StatsJob{
		serverService: serverService,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (j *StatsJob) Name() string {
	return "StatsJob"
}

func (j *StatsJob) Start() error {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.report()
			case <-j.ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (j *StatsJob) Stop() error {
	j.cancel()
	j.wg.Wait()
	return nil
}

func (j *StatsJob) report() {
	status := j.serverService.GetStatus()
	logger.Infof("status: cpu %.1f%%, mem %d/%d, videos %d, goroutines %d",
		status.Cpu, status.Mem.Current, status.Mem.Total,
		status.VideoCount, status.AppStats.Threads)
}
