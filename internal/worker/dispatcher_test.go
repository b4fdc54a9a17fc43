package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	delay time.Duration
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("provider rejected the message")
	}

	m.sent = append(m.sent, to)

	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.sent...)
}

func TestDispatcher_DeliversQueuedJobs(t *testing.T) {

	mailer := &fakeMailer{}
	dispatcher := worker.NewDispatcher(mailer, 8)

	dispatcher.Start(context.Background(), 2)

	assert.True(t, dispatcher.Enqueue(worker.EmailJob{To: "a@example.com", Subject: "s", Body: "b"}))
	assert.True(t, dispatcher.Enqueue(worker.EmailJob{To: "b@example.com", Subject: "s", Body: "b"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Stop(ctx))
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, mailer.sentTo())
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {

	mailer := &fakeMailer{delay: time.Second}
	dispatcher := worker.NewDispatcher(mailer, 1)

	// no workers started yet, so only the buffer accepts jobs
	assert.True(t, dispatcher.Enqueue(worker.EmailJob{To: "a@example.com"}))
	assert.False(t, dispatcher.Enqueue(worker.EmailJob{To: "b@example.com"}))
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {

	mailer := &fakeMailer{}
	dispatcher := worker.NewDispatcher(mailer, 4)

	dispatcher.Start(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Stop(ctx))
	assert.False(t, dispatcher.Enqueue(worker.EmailJob{To: "late@example.com"}))
}

func TestDispatcher_FailedSendDoesNotStopWorkers(t *testing.T) {

	mailer := &fakeMailer{fail: true}
	dispatcher := worker.NewDispatcher(mailer, 4)

	dispatcher.Start(context.Background(), 1)

	assert.True(t, dispatcher.Enqueue(worker.EmailJob{To: "a@example.com"}))

	// flip to healthy, the worker must still be alive for the next job
	mailer.mu.Lock()
	mailer.fail = false
	mailer.mu.Unlock()

	assert.True(t, dispatcher.Enqueue(worker.EmailJob{To: "b@example.com"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Stop(ctx))
	assert.Contains(t, mailer.sentTo(), "b@example.com")
}
