// Package dispatch delivers approval confirmations as a best-effort
// outbound queue. Messages are retried a bounded number of times and then
// dropped with a log record; delivery never feeds back into the approval
// transaction.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/krosec/sec-guard/internal/service"
)

const (
	defaultWorkers     = 2
	defaultMaxAttempts = 3
	channelBuffer      = 128
	retryBackoff       = 2 * time.Second
)

// Mailer is the transport behind the queue.
type Mailer interface {
	SendClientApproval(ctx context.Context, msg service.ClientApprovalMessage) error
	SendEmployeeAssignment(ctx context.Context, msg service.EmployeeAssignmentMessage) error
}

type job struct {
	client   *service.ClientApprovalMessage
	employee *service.EmployeeAssignmentMessage
	attempt  int
}

// Dispatcher implements service.ConfirmationDispatcher by queueing messages
// for a fixed set of workers. Enqueueing never fails the caller; a full
// queue drops the message with a log record.
type Dispatcher struct {
	jobs        chan job
	mailer      Mailer
	log         zerolog.Logger
	workers     int
	maxAttempts int
	backoff     time.Duration
	wg          sync.WaitGroup
}

func NewDispatcher(workers, maxAttempts int, mailer Mailer, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Dispatcher{
		jobs:        make(chan job, channelBuffer),
		mailer:      mailer,
		log:         log,
		workers:     workers,
		maxAttempts: maxAttempts,
		backoff:     retryBackoff,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx)
	}
}

// Wait blocks until all workers have stopped. Intended for shutdown and
// tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) NotifyClientOfApproval(_ context.Context, msg service.ClientApprovalMessage) error {
	d.enqueue(job{client: &msg})
	return nil
}

func (d *Dispatcher) NotifyEmployeeOfAssignment(_ context.Context, msg service.EmployeeAssignmentMessage) error {
	d.enqueue(job{employee: &msg})
	return nil
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.jobs <- j:
	default:
		d.log.Error().Msg("confirmation queue full, message dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	for j.attempt = 1; j.attempt <= d.maxAttempts; j.attempt++ {
		var err error
		if j.client != nil {
			err = d.mailer.SendClientApproval(ctx, *j.client)
		} else {
			err = d.mailer.SendEmployeeAssignment(ctx, *j.employee)
		}
		if err == nil {
			return
		}

		if j.attempt == d.maxAttempts {
			d.log.Error().Err(err).Int("attempts", j.attempt).Msg("confirmation delivery gave up")
			return
		}
		d.log.Warn().Err(err).Int("attempt", j.attempt).Msg("confirmation delivery failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.backoff):
		}
	}
}
