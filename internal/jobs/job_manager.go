package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started int
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager running the session sweep job.
func NewJobManager(sweep *SessionSweepJob) *JobManager {
	jm := &JobManager{}
	jm.Register("session sweep", sweep)
	return jm
}

// Register adds a job started by StartAll after the ones already registered.
func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs in registration order.
// If one fails to start, the jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for _, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
		jm.started++
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := jm.started - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
	jm.started = 0
}
