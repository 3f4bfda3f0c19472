// Package exec 提供任务执行相关的子包。
//
// 子包列表：
//   - xworker: 固定大小的 worker pool、单线程执行器与同步执行器
package exec
