// Package xworker 提供固定大小的 worker pool 以及可替换的执行器实现。
//
// # 执行器接口
//
// [Worker] 定义四个操作：Start、Stop、Started、DoWork。实现：
//   - [Pool]：固定数量的 goroutine 共享一个 FIFO 队列
//   - [NewDedicated]：只有一个 goroutine 的 Pool，任务严格串行
//   - [Inline]：在调用方 goroutine 上同步执行，适用于测试
//
// # 生命周期
//
// Pool 的状态机为 Idle → Running → Stopping → Idle，所有转换由同一把锁串行化：
//
//	p, err := xworker.New(xworker.WithWorkers(4), xworker.WithName("jobs"))
//	if err != nil {
//		return err
//	}
//	p.Start()
//	p.DoWork(func() { ... })
//	p.Stop() // 同步：等待执行中的任务完成，丢弃尚未开始的任务
//
// 两阶段关闭：RequestStop 只发出信号并立即返回，适合在信号处理或监督 goroutine
// 中调用；随后由 Wait 等待所有 goroutine 退出。
//
// # 提交语义
//
//   - DoWork 永不阻塞；没有空闲 worker 或 pool 未处于 Running 时返回 false
//   - 返回 true 表示"已接收"，不代表"已执行"：Stop 之前尚未分派的任务可能不会执行
//   - 同一队列按接收顺序分派，不保证由哪个 worker 执行
//   - 需要失败原因时使用 TrySubmit，返回 ErrNotAccepting / ErrCapacityExhausted
//   - 被拒绝的任务不会自动重试；调用方可显式使用 [SubmitRetry]
//
// # 失败隔离
//
// 任务 panic 在分派边界被捕获：记录带堆栈的错误日志、计入指标、交给
// WithPanicHandler 注册的回调，worker 随后继续处理下一个任务。
//
// # 协作中断
//
// DoWorkContext 提交的任务会收到一个 context，Interrupt 会取消它；
// 任务可在长操作中检查 ctx.Done() 以尽早退出。这是尽力而为的机制，
// 普通 WorkItem 不受影响。
//
// # 超时
//
// 提交与关闭都不内置超时；需要有界等待时使用 StopContext / WaitContext。
package xworker
