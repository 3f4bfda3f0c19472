// Package xctx 在 context 中携带 worker pool 的执行上下文。
//
// 每个被 pool 执行的任务都会拿到一个带有以下信息的 context：
//   - pool 名称（[WithPool]/[Pool]）
//   - 执行该任务的 worker 编号（[WithWorker]/[Worker]，从 1 开始）
//   - 任务序号（[WithItem]/[Item]，按接收顺序单调递增）
//
// xlog 的 EnrichHandler 通过 [AppendAttrs] 将这些字段以及 OpenTelemetry
// 的 trace_id/span_id 自动注入日志。
//
// 所有读取函数对 nil context 安全，返回零值。
package xctx
