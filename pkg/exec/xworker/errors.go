package xworker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers 表示 worker 数量超出 [1, MaxWorkers]。
	ErrInvalidWorkers = errors.New("xworker: invalid worker count")

	// ErrNotAccepting 表示 pool 不在 Running 状态，不接收任务。
	ErrNotAccepting = errors.New("xworker: pool is not accepting work")

	// ErrCapacityExhausted 表示当前没有空闲 worker。
	ErrCapacityExhausted = errors.New("xworker: no worker available")

	// ErrNilItem 表示提交的任务为 nil。
	ErrNilItem = errors.New("xworker: nil work item")

	// ErrInvalidTransition 表示生命周期操作与当前状态冲突，
	// 例如在 RequestStop 之后、Wait 完成之前调用 Start。
	ErrInvalidTransition = errors.New("xworker: invalid state transition")

	// ErrItemExited 表示任务调用了 runtime.Goexit，没有正常返回。
	// 作为 PanicError.Value 报告。
	ErrItemExited = errors.New("xworker: work item exited its goroutine")

	// ErrNilWorker 表示传入的 Worker 为 nil。
	ErrNilWorker = errors.New("xworker: nil worker")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xworker: nil context")
)

// PanicError 描述任务执行期间发生的 panic。
type PanicError struct {
	// Value recover() 得到的值
	Value any
	// Worker 执行该任务的 worker 编号；Inline 执行器为 0
	Worker int
	// Item 任务序号
	Item uint64
	// Stack panic 发生时的 goroutine 堆栈
	Stack []byte
}

// Error 实现 error 接口。
func (e *PanicError) Error() string {
	return fmt.Sprintf("xworker: work item %d panicked on worker %d: %v", e.Item, e.Worker, e.Value)
}

// Unwrap 当 panic 值本身是 error 时返回它。
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
