// Package logx 负责运行日志的落盘设置（zap）。
//
// 原工具约定：每次运行生成一个带时间戳的日志文件，放在用户桌面；
// 桌面不可用时退回当前工作目录。核心流程不感知日志去向。
package logx

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var nowFunc = time.Now

// NewRunLogger 创建本次 run 的文件日志器，返回日志器与日志文件路径。
//
// dir 为空时使用默认位置：~/Desktop，创建失败则退回 cwd。
// 日志文件名形如 20060102_150405_cadsweep.log（每次运行一个新文件）。
func NewRunLogger(dir string) (*zap.Logger, string, error) {
	if dir == "" {
		dir = defaultLogDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		// 目录建不出来：退回 cwd（与原工具一致，日志绝不阻断清理）。
		if cwd, e := os.Getwd(); e == nil {
			dir = cwd
		} else {
			return nil, "", err
		}
	}

	name := nowFunc().Format("20060102_150405") + "_cadsweep.log"
	path := filepath.Join(dir, name)

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, "", err
	}
	return logger, path, nil
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}
