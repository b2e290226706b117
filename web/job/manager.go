package job

import (
	"sync"

	"quipvid/logger"
)

// Manager owns the lifecycle of registered jobs.
type Manager struct {
	jobs []Job
	mu   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		jobs: make([]Job, 0),
	}
}

func (m *Manager) Register(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	logger.Infof("registered job: %s", job.Name())
}

func (m *Manager) StartAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, job := range m.jobs {
		if err := job.Start(); err != nil {
			logger.Errorf("start job %s failed: %v", job.Name(), err)
		}
	}
}

func (m *Manager) StopAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, j := range m.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			if err := job.Stop(); err != nil {
				logger.Errorf("stop job %s failed: %v", job.Name(), err)
			}
		}(j)
	}
	wg.Wait()
}
