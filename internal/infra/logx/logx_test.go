package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRunLogger_WritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()

	orig := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 8, 25, 9, 15, 30, 0, time.Local) }
	defer func() { nowFunc = orig }()

	logger, path, err := NewRunLogger(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260825_091530_cadsweep.log"), path)

	logger.Info("测试条目")
	require.NoError(t, logger.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "测试条目"), "日志内容缺失：%s", b)
}

func TestNewRunLogger_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, path, err := NewRunLogger(dir)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.True(t, strings.HasPrefix(path, dir), "日志必须落在指定目录：%s", path)
}
