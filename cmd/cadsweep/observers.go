package main

import (
	"go.uber.org/zap"

	"github.com/John-Robertt/cadsweep/internal/app/run"
	"github.com/John-Robertt/cadsweep/internal/config"
	"github.com/John-Robertt/cadsweep/internal/domain"
)

// multiObserver 把同一事件流扇出给多个 Observer（日志 + 终端进度）。
type multiObserver []run.Observer

var _ run.Observer = (multiObserver)(nil)

func (m multiObserver) OnStart(eff config.EffectiveConfig) {
	for _, o := range m {
		o.OnStart(eff)
	}
}

func (m multiObserver) OnDriveStarted(root domain.ScanRoot) {
	for _, o := range m {
		o.OnDriveStarted(root)
	}
}

func (m multiObserver) OnDirectorySkipped(dir string) {
	for _, o := range m {
		o.OnDirectorySkipped(dir)
	}
}

func (m multiObserver) OnDirectoryError(dir string, err error) {
	for _, o := range m {
		o.OnDirectoryError(dir, err)
	}
}

func (m multiObserver) OnCandidateFound(c domain.Candidate) {
	for _, o := range m {
		o.OnCandidateFound(c)
	}
}

func (m multiObserver) OnScanProgress(dir string, visited int) {
	for _, o := range m {
		o.OnScanProgress(dir, visited)
	}
}

func (m multiObserver) OnSummaryReady(cands []domain.Candidate) {
	for _, o := range m {
		o.OnSummaryReady(cands)
	}
}

func (m multiObserver) OnDisposeStarted(total int) {
	for _, o := range m {
		o.OnDisposeStarted(total)
	}
}

func (m multiObserver) OnItemMoved(c domain.Candidate) {
	for _, o := range m {
		o.OnItemMoved(c)
	}
}

func (m multiObserver) OnItemFailed(c domain.Candidate, code, msg string) {
	for _, o := range m {
		o.OnItemFailed(c, code, msg)
	}
}

func (m multiObserver) OnRunComplete(moved, failed int) {
	for _, o := range m {
		o.OnRunComplete(moved, failed)
	}
}

// logObserver 是 Reporter 的落盘实现：把事件流写进 zap 运行日志。
// 进度类事件（OnScanProgress）刻意不落日志，避免日志体积爆炸。
type logObserver struct {
	log *zap.Logger
}

var _ run.Observer = (*logObserver)(nil)

func newLogObserver(log *zap.Logger) *logObserver {
	return &logObserver{log: log}
}

func (l *logObserver) OnStart(eff config.EffectiveConfig) {
	l.log.Info("run 开始",
		zap.Strings("roots", eff.Roots),
		zap.Bool("auto_confirm", eff.AutoConfirm),
		zap.Bool("dry_run", eff.DryRun),
		zap.Strings("exclude_dirs", eff.ExcludeDirs),
	)
}

func (l *logObserver) OnDriveStarted(root domain.ScanRoot) {
	l.log.Info("开始扫描卷",
		zap.String("mount", root.Mount),
		zap.String("fstype", root.Fstype),
		zap.Bool("readable", root.Readable),
	)
}

func (l *logObserver) OnDirectorySkipped(dir string) {
	l.log.Info("目录被排除", zap.String("dir", dir))
}

func (l *logObserver) OnDirectoryError(dir string, err error) {
	l.log.Warn("目录访问失败", zap.String("dir", dir), zap.Error(err))
}

func (l *logObserver) OnCandidateFound(c domain.Candidate) {
	l.log.Info("发现候选",
		zap.String("backup", c.BackupAbs),
		zap.String("kind", string(c.Kind)),
		zap.String("original", c.OriginalAbs),
	)
}

func (l *logObserver) OnScanProgress(string, int) {}

func (l *logObserver) OnSummaryReady(cands []domain.Candidate) {
	l.log.Info("扫描完成", zap.Int("found", len(cands)))
}

func (l *logObserver) OnDisposeStarted(total int) {
	l.log.Info("开始处置", zap.Int("total", total))
}

func (l *logObserver) OnItemMoved(c domain.Candidate) {
	l.log.Info("已移入回收站", zap.String("backup", c.BackupAbs))
}

func (l *logObserver) OnItemFailed(c domain.Candidate, code, msg string) {
	l.log.Error("处置失败",
		zap.String("backup", c.BackupAbs),
		zap.String("error_code", code),
		zap.String("error_msg", msg),
	)
}

func (l *logObserver) OnRunComplete(moved, failed int) {
	l.log.Info("run 结束", zap.Int("moved", moved), zap.Int("failed", failed))
}
