package reactor

import "sync"

// Scheduler runs tasks one at a time, in the order they were scheduled.
// Schedule must not block and reports false once the scheduler is closed.
type Scheduler interface {
	Schedule(task func()) bool
}

// Loop is a Scheduler backed by a single goroutine and an unbounded queue.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewLoop starts a loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Schedule queues task to run on the loop goroutine.
func (l *Loop) Schedule(task func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	l.signal()
	return true
}

// Close stops accepting tasks, runs the ones already queued, and waits for
// the loop goroutine to exit. It must not be called from a loop task.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.signal()
	<-l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 {
			if l.closed {
				l.mu.Unlock()
				return
			}
			l.mu.Unlock()
			<-l.wake
			l.mu.Lock()
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}
