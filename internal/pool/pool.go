// Package pool provides the fixed worker pool that runs one task per
// accepted connection.
package pool

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

// ThreadPool is a fixed set of workers pulling tasks from a shared queue.
// The worker count never changes for the lifetime of the pool; a panicking
// task is recovered and logged so its worker keeps serving.
type ThreadPool struct {
	tasks  chan func()
	logger *logrus.Logger
}

// New starts a pool of the given size. Non-positive workers or queueSize
// fall back to the defaults. The queue is bounded; Execute blocks once it
// fills, which puts backpressure on the accept loop instead of growing
// memory without limit.
func New(workers, queueSize int, logger *logrus.Logger) *ThreadPool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &ThreadPool{
		tasks:  make(chan func(), queueSize),
		logger: logger,
	}

	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// Execute queues a task to be run by whichever worker becomes free. It
// blocks while the queue is full.
func (p *ThreadPool) Execute(task func()) {
	p.tasks <- task
}

// Close stops the workers after the queued tasks drain. Tasks submitted
// after Close panic; the server never closes its pool, this exists for
// tests.
func (p *ThreadPool) Close() {
	close(p.tasks)
}

func (p *ThreadPool) worker(id int) {
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *ThreadPool) run(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(logrus.Fields{
				"worker": id,
				"panic":  r,
				"stack":  string(debug.Stack()),
			}).Error("task panicked")
		}
	}()
	task()
}
