package pool

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAllTasksRun(t *testing.T) {
	p := New(4, 16, quietLogger())
	defer p.Close()

	const n = 100
	var counter atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		p.Execute(func() {
			counter.Add(1)
			wg.Done()
		})
	}

	wg.Wait()
	assert.Equal(t, int64(n), counter.Load())
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	// a single worker must survive a panicking task and run the next one
	p := New(1, 4, quietLogger())
	defer p.Close()

	p.Execute(func() { panic("boom") })

	done := make(chan struct{})
	p.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panicking task")
	}
}

func TestParallelism(t *testing.T) {
	// with 2 workers, two blocking tasks must run at the same time
	p := New(2, 4, quietLogger())
	defer p.Close()

	var rendezvous sync.WaitGroup
	rendezvous.Add(2)
	done := make(chan struct{}, 2)

	// each task waits for the other, so both finish only when two workers
	// hold a task at the same time
	meet := func() {
		rendezvous.Done()
		rendezvous.Wait()
		done <- struct{}{}
	}
	p.Execute(meet)
	p.Execute(meet)

	for range 2 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("tasks did not run in parallel")
		}
	}
}

func TestDefaults(t *testing.T) {
	p := New(0, 0, nil)
	defer p.Close()

	ran := make(chan struct{})
	p.Execute(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run with default sizing")
	}
}
