package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，与 slog.Level 数值一致
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// String 返回大写级别名，非标准级别形如 "INFO+2"。
func (l Level) String() string {
	return slog.Level(l).String()
}

// ParseLevel 解析日志级别，大小写不敏感，忽略首尾空白。
//
// 除 debug/info/warn/error 外接受 "warning"，以及 slog 的偏移写法（如 "info+2"）。
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		return LevelWarn, nil
	}
	var l slog.Level
	if name == "" || l.UnmarshalText([]byte(name)) != nil {
		return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
	}
	return Level(l), nil
}
