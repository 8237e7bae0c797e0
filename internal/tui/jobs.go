package tui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindFetch jobKind = "fetch"
	jobKindView  jobKind = "view"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCanceled  jobStatus = "canceled"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type runningJob struct {
	id     string
	cancel context.CancelFunc
}

// jobBus runs work off the update loop. Starting a job cancels any job of the
// same kind that is still in flight.
type jobBus struct {
	counter int64

	mu      sync.Mutex
	running map[jobKind]runningJob
}

func newJobBus() *jobBus {
	return &jobBus{running: map[jobKind]runningJob{}}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) (string, tea.Cmd) {
	id := b.nextID(kind)
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	if previous, ok := b.running[kind]; ok {
		log.Printf("[jobs] %s superseded by %s", previous.id, id)
		previous.cancel()
	}
	b.running[kind] = runningJob{id: id, cancel: cancel}
	b.mu.Unlock()

	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		defer b.finish(kind, id)
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		switch {
		case err != nil && ctx.Err() != nil:
			snapshot.Status = jobStatusCanceled
			snapshot.Err = err.Error()
		case err != nil:
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		default:
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", id, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return id, tea.Sequence(startCmd, runCmd)
}

// Cancel stops the running job of the given kind, if any.
func (b *jobBus) Cancel(kind jobKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if job, ok := b.running[kind]; ok {
		job.cancel()
		delete(b.running, kind)
	}
}

func (b *jobBus) finish(kind jobKind, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if job, ok := b.running[kind]; ok && job.id == id {
		job.cancel()
		delete(b.running, kind)
	}
}

func (b *jobBus) Running(kind jobKind) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	job, ok := b.running[kind]
	return job.id, ok
}
