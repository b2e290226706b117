package service

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"quipvid/config"
	"quipvid/logger"
)

// Status is the health snapshot shown on the panel status endpoint.
type Status struct {
	T   time.Time `json:"-"`
	Cpu float64   `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Loads      []float64 `json:"loads"`
	Uptime     uint64    `json:"uptime"`
	VideoCount int64     `json:"videoCount"`
	AppStats   struct {
		Threads uint32 `json:"threads"`
		Mem     uint64 `json:"mem"`
		Uptime  uint64 `json:"uptime"`
	} `json:"appStats"`
	Version string `json:"version"`
}

type ServerService struct {
	videoService *VideoService
	startedAt    time.Time
}

func NewServerService(videoService *VideoService) *ServerService {
	return &ServerService{
		videoService: videoService,
		startedAt:    time.Now(),
	}
}

func (s *ServerService) GetStatus() *Status {
	now := time.Now()
	status := &Status{
		T:       now,
		Version: config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	if s.videoService != nil {
		count, err := s.videoService.CountVideos()
		if err != nil {
			logger.Warning("count videos failed:", err)
		} else {
			status.VideoCount = count
		}
	}

	var rtm runtime.MemStats
	runtime.ReadMemStats(&rtm)
	status.AppStats.Mem = rtm.Sys
	status.AppStats.Threads = uint32(runtime.NumGoroutine())
	status.AppStats.Uptime = uint64(now.Sub(s.startedAt).Seconds())

	return status
}
