package queue

import (
	"context"
	"sync"
)

type Task interface {
	Execute(ctx context.Context) error
}

type TaskQueue chan Task

func NewTaskQueue(size int) TaskQueue {
	return make(TaskQueue, size)
}

// Queue is a TaskQueue that refuses new tasks once it is closed.
type Queue struct {
	tasks  TaskQueue
	mu     sync.RWMutex
	closed bool
}

func New(size int) *Queue {
	return &Queue{tasks: NewTaskQueue(size)}
}

// Enqueue never blocks. It reports false when the queue is full or closed.
func (q *Queue) Enqueue(task Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- task:
		return true
	default:
		return false
	}
}

func (q *Queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
}
