package job

// Job is the contract for long-running background tasks.
type Job interface {
	// Start launches the task. It must not block.
	Start() error
	// Stop shuts the task down and waits for it to exit.
	Stop() error
	// Name returns the identifier of the job.
	Name() string
}
