package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"
)

const defaultFeedInterval = 200 * time.Millisecond

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xworkerdemo",
		Usage:     "xworker pool 生命周期演示",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件（.yaml/.yml/.json）",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "worker 数量",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "每个场景提交的任务数",
			},
			&cli.IntFlag{
				Name:  "steps",
				Usage: "每个任务的打印次数",
			},
			&cli.DurationFlag{
				Name:  "step",
				Usage: "每次打印之间的间隔",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件（按大小轮转），为空时输出到 stderr",
			},
			&cli.BoolFlag{
				Name:  "log-source",
				Usage: "日志中记录源码位置",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd, stderr)
			if err != nil {
				return err
			}
			defer s.close()
			return newDemo(stdout, s).run(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "常驻运行 pool，周期提交任务，直到收到信号",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Prometheus /metrics 监听地址，为空时不启用",
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "提交任务的间隔",
						Value: defaultFeedInterval,
					},
				},
				OnUsageError: onUsageError,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s, err := loadSettings(cmd, stderr)
					if err != nil {
						return err
					}
					defer s.close()
					return serve(ctx, s, cmd.Duration("interval"))
				},
			},
		},
		OnUsageError:   onUsageError,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// onUsageError 将 flag 解析错误映射为退出码 2。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}
