package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by Submit when the bounded queue cannot accept
// another task.
var ErrQueueFull = errors.New("worker queue is full")

// Task is one unit of background work. The context carries the per-task
// timeout; tasks must respect cancellation at their blocking points.
type Task func(ctx context.Context)

// Pool runs background tasks on a fixed set of workers over a bounded queue.
// Each task gets its own timeout and panic boundary, so one bad evaluation
// cannot take down its worker or stall the process.
type Pool struct {
	tasks       chan Task
	taskTimeout time.Duration
	log         *logrus.Entry

	wg       sync.WaitGroup
	stopOnce sync.Once

	// mu serializes Submit against Shutdown's close of the task channel,
	// so a submit racing shutdown errors out instead of panicking on a
	// send to a closed channel.
	mu     sync.Mutex
	closed bool
}

// NewPool starts workers goroutines consuming from a queue of queueSize.
func NewPool(workers, queueSize int, taskTimeout time.Duration, log *logrus.Entry) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		tasks:       make(chan Task, queueSize),
		taskTimeout: taskTimeout,
		log:         log,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// Submit enqueues a task without blocking. Returns ErrQueueFull when the
// queue is at capacity so callers can shed load instead of fanning out
// unboundedly.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("worker pool is shut down")
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for in-flight ones, bounded by ctx.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), p.taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.log.WithFields(logrus.Fields{
				"worker": id,
				"panic":  r,
			}).Error("recovered from panic in background task")
		}
	}()

	task(ctx)
}
