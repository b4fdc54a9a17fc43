// Package worker runs the fire-and-forget email queue. The request path
// enqueues and moves on; it never blocks on delivery and never observes
// the outcome. Redelivery on failure belongs to the mail provider, not to
// this process.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adityanarayanofficial/marketplace-platform/pkg/sendgrid"
)

type EmailJob struct {
	To      string
	Subject string
	Body    string
}

type Dispatcher struct {
	mailer sendgrid.EmailService
	jobs   chan EmailJob
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

func NewDispatcher(mailer sendgrid.EmailService, queueSize int) *Dispatcher {

	if queueSize < 1 {
		queueSize = 1
	}

	return &Dispatcher{
		mailer: mailer,
		jobs:   make(chan EmailJob, queueSize),
	}
}

// Start launches the worker goroutines. Jobs already queued before Start
// are picked up once the workers run.
func (d *Dispatcher) Start(ctx context.Context, workers int) {

	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {

		d.wg.Add(1)

		go func(id int) {
			defer d.wg.Done()
			d.run(ctx, id)
		}(i + 1)

	}

	slog.Info("Email dispatcher started", slog.Int("workers", workers))
}

func (d *Dispatcher) run(ctx context.Context, id int) {

	for job := range d.jobs {

		if err := d.mailer.Send(ctx, job.To, job.Subject, job.Body); err != nil {
			slog.Error("Failed to send email",
				slog.Int("worker", id),
				slog.String("to", job.To),
				slog.String("error", err.Error()))
			continue
		}

		slog.Info("Email sent", slog.Int("worker", id), slog.String("to", job.To))

	}
}

// Enqueue hands a job to the queue without blocking; a full queue drops
// the job and reports false.
func (d *Dispatcher) Enqueue(job EmailJob) bool {

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	select {
	case d.jobs <- job:
		return true
	default:
		slog.Warn("Email queue full, dropping job", slog.String("to", job.To))
		return false
	}
}

// Stop drains the queue and waits for the workers, giving up when ctx
// expires.
func (d *Dispatcher) Stop(ctx context.Context) error {

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
