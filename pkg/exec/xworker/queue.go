package xworker

import (
	"time"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// task 队列中的一个待执行任务。
type task struct {
	seq      uint64
	fn       ContextItem
	enqueued time.Time
}

// taskQueue 带关闭标记的 FIFO 队列。
//
// 非并发安全：由 Pool.mu 保护，与可用计数、状态共用同一把锁。
// 关闭即关停信号：关闭后 push 失败，pop 不再返回任务。
type taskQueue struct {
	items  *linkedlistqueue.Queue
	closed bool
}

func newTaskQueue() *taskQueue {
	return &taskQueue{items: linkedlistqueue.New()}
}

// push 入队，队列已关闭时返回 false。
func (q *taskQueue) push(t task) bool {
	if q.closed {
		return false
	}
	q.items.Enqueue(t)
	return true
}

// pop 出队；队列已关闭或为空时返回 false。
// 关闭后残留的任务视为被放弃。
func (q *taskQueue) pop() (task, bool) {
	if q.closed {
		return task{}, false
	}
	v, ok := q.items.Dequeue()
	if !ok {
		return task{}, false
	}
	t, ok := v.(task)
	return t, ok
}

func (q *taskQueue) len() int {
	return q.items.Size()
}

// waiting 报告消费者是否需要继续等待。
func (q *taskQueue) waiting() bool {
	return !q.closed && q.items.Empty()
}

func (q *taskQueue) close() {
	q.closed = true
}

// reset 清空并重新打开队列，返回被丢弃的任务数。
func (q *taskQueue) reset() int {
	dropped := q.items.Size()
	q.items.Clear()
	q.closed = false
	return dropped
}
