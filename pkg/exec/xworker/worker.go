package xworker

import (
	"context"
	"strconv"
)

// WorkItem 一个无参数的工作单元。
type WorkItem func()

// ContextItem 可协作中断的工作单元。
//
// ctx 携带 pool 名称、worker 编号和任务序号（见 xctx），
// 并在 Pool.Interrupt 时被取消。
type ContextItem func(ctx context.Context)

// Worker 定义执行器的通用能力。
//
// 所有方法都必须可以并发调用。
type Worker interface {
	// Start 开始接收任务。已启动时再次调用返回 true 且不产生副作用。
	Start() bool

	// Stop 停止接收任务并同步等待关闭完成。
	// 正在执行的任务会执行完毕；尚未开始的任务被丢弃。
	// 支持多个调用方并发调用，只有一个执行实际的关闭流程。
	Stop() bool

	// Started 报告执行器是否已启动且尚未完全停止。
	Started() bool

	// DoWork 提交任务，返回 true 表示已接收（不代表已执行）。
	DoWork(item WorkItem) bool
}

// State Pool 的生命周期状态。
type State int32

const (
	// StateIdle 未创建 goroutine，不接收任务。
	StateIdle State = iota
	// StateRunning goroutine 已创建，接收任务。
	StateRunning
	// StateStopping 正在关闭，不接收任务。
	StateStopping
)

// String 返回状态的可读名称。
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// contextItem 将 WorkItem 适配为 ContextItem。
func contextItem(item WorkItem) ContextItem {
	if item == nil {
		return nil
	}
	return func(context.Context) { item() }
}
