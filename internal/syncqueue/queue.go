// Package syncqueue runs fire-and-forget reconciliation jobs against the backend.
//
// Each entity gets its own lane; jobs within a lane run strictly in submission order, lanes run
// independently. A failed job is logged and counted, never retried.
package syncqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"learnhub_client/internal/config"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrClosed = errors.New("sync queue closed")

type Job struct {
	Entity string
	Op     string
	Run    func(ctx context.Context) error
}

type Queue struct {
	mu      sync.Mutex
	lanes   map[string]*lane
	closed  bool
	pending int
	idle    chan struct{}

	limiter    *rate.Limiter
	jobTimeout time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
}

func New(cfg config.SyncConfig) *Queue {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	timeout := cfg.JobTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		lanes:      make(map[string]*lane),
		limiter:    rate.NewLimiter(limit, burst),
		jobTimeout: timeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Enqueue never blocks. It returns ErrClosed after Close.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		logger.Log.Warn("sync job dropped, queue closed", zap.String("entity", job.Entity), zap.String("op", job.Op))
		return ErrClosed
	}
	l, ok := q.lanes[job.Entity]
	if !ok {
		l = newLane(job.Entity)
		q.lanes[job.Entity] = l
		go l.run(q)
	}
	if q.pending == 0 {
		q.idle = make(chan struct{})
	}
	q.pending++
	q.mu.Unlock()

	l.push(job)
	return nil
}

// Flush waits until no job is queued or running, or ctx is done.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.pending == 0 {
		q.mu.Unlock()
		return nil
	}
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes within ctx, then stops all lanes. Jobs still queued after ctx expires are abandoned.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	err := q.Flush(ctx)
	q.cancel()
	return err
}

func (q *Queue) done() {
	q.mu.Lock()
	q.pending--
	if q.pending == 0 {
		close(q.idle)
	}
	q.mu.Unlock()
}

func (q *Queue) execute(job Job) {
	defer q.done()

	if err := q.limiter.Wait(q.ctx); err != nil {
		monitoring.SyncJobCounter.WithLabelValues(job.Entity, job.Op, "abandoned").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(q.ctx, q.jobTimeout)
	defer cancel()

	if err := job.Run(ctx); err != nil {
		monitoring.SyncJobCounter.WithLabelValues(job.Entity, job.Op, "failed").Inc()
		logger.Log.Warn("background sync failed, keeping local state",
			zap.String("entity", job.Entity),
			zap.String("op", job.Op),
			zap.Error(err),
		)
		return
	}
	monitoring.SyncJobCounter.WithLabelValues(job.Entity, job.Op, "ok").Inc()
	logger.Log.Debug("background sync done", zap.String("entity", job.Entity), zap.String("op", job.Op))
}

type lane struct {
	entity string
	mu     sync.Mutex
	jobs   []Job
	wake   chan struct{}
}

func newLane(entity string) *lane {
	return &lane{entity: entity, wake: make(chan struct{}, 1)}
}

func (l *lane) push(job Job) {
	l.mu.Lock()
	l.jobs = append(l.jobs, job)
	depth := len(l.jobs)
	l.mu.Unlock()
	monitoring.SyncQueueDepth.WithLabelValues(l.entity).Set(float64(depth))

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *lane) pop() (Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.jobs) == 0 {
		return Job{}, false
	}
	job := l.jobs[0]
	l.jobs[0] = Job{}
	l.jobs = l.jobs[1:]
	monitoring.SyncQueueDepth.WithLabelValues(l.entity).Set(float64(len(l.jobs)))
	return job, true
}

func (l *lane) run(q *Queue) {
	for {
		for {
			job, ok := l.pop()
			if !ok {
				break
			}
			q.execute(job)
		}
		select {
		case <-l.wake:
		case <-q.ctx.Done():
			l.drain(q)
			return
		}
	}
}

// drain releases jobs that will never run so Flush callers are not left waiting.
func (l *lane) drain(q *Queue) {
	for {
		job, ok := l.pop()
		if !ok {
			return
		}
		monitoring.SyncJobCounter.WithLabelValues(job.Entity, job.Op, "abandoned").Inc()
		q.done()
	}
}
