// xworkerdemo 演示 xworker.Pool 的生命周期。
//
// 用法:
//
//	xworkerdemo [全局选项]          运行两个示例场景
//	xworkerdemo [全局选项] serve    常驻运行 pool 并暴露 Prometheus 指标
//
// 场景:
//
//	1. 同步启动 + 同步停止（Start / Stop）
//	2. 同步启动 + 异步停止（Start / RequestStop / Wait）
//
// 每个场景提交 --jobs 个示例任务，任务每隔 --step 打印一次 "Test N: i"，
// 共 --steps 次。worker 数少于任务数时，多出的任务会被拒绝。
//
// 退出码:
//
//	0: 全部生命周期操作成功
//	1: 有操作失败或运行出错
//	2: 参数或配置错误
//
// 示例:
//
//	xworkerdemo --threads 3
//	xworkerdemo --config demo.yaml serve --metrics-addr :9090
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := createApp(stdout, stderr).Run(ctx, args)
	return exitCode(err, stderr)
}

// exitCode 将错误映射为退出码。
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// exitError 输出已完成、只需设置退出码的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 参数或配置错误。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }
