// Package xlog 基于 log/slog 的结构化日志库，是 xworker 各组件的统一日志出口。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，Build 返回该错误）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xworker/app.log").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// # 全局 Logger
//
// [Default] 惰性初始化（stderr、Info、text），[SetDefault] 替换，
// [ResetDefault] 仅用于测试。便利函数 [Debug]、[Info]、[Warn]、[Error]、[Stack]
// 强制传入 context。
//
// # 上下文注入
//
// 默认启用 [EnrichHandler]：自动从 context 注入 pool、worker_id、item_seq、
// trace_id、span_id（见 xctx 包）。worker pool 执行任务时会把这些字段放入
// 任务 context，因此任务内部打印的日志天然带有执行位置。
//
// # 动态级别
//
// Build 返回 [LoggerWithLevel]，可在运行时 SetLevel；派生 logger 共享级别。
// 配置热更新（internal/config.Watch）即通过此能力调整级别。
package xlog
