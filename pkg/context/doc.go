// Package context 提供上下文相关的子包。
//
// 子包列表：
//   - xctx: 在 context 中注入/提取 pool 名称、worker 编号、任务序号，
//     并将其与 OpenTelemetry trace/span id 一起转换为日志属性
package context
