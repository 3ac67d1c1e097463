package run

import (
	"github.com/John-Robertt/cadsweep/internal/config"
	"github.com/John-Robertt/cadsweep/internal/domain"
)

// Observer 用于把“运行进度/阶段/条目结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（展示/落日志由上层决定）。
// - 事件顺序即发生顺序；本设计单线程执行，实现无需加锁。
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnDriveStarted 在开始扫描某个根时调用。
	OnDriveStarted(root domain.ScanRoot)
	// OnDirectorySkipped 在目录被排除策略剪枝时调用。
	OnDirectorySkipped(dir string)
	// OnDirectoryError 在目录列出失败（权限/IO）被剪枝时调用。
	OnDirectoryError(dir string, err error)
	// OnCandidateFound 在扫描器产出一个候选时调用。
	OnCandidateFound(c domain.Candidate)
	// OnScanProgress 是纯进度提示（当前目录 + 已访问目录数），不影响正确性。
	OnScanProgress(dir string, visited int)
	// OnSummaryReady 在全部根扫描完成、候选清单定稿时调用。
	OnSummaryReady(cands []domain.Candidate)
	// OnDisposeStarted 在确认通过、开始逐项处置时调用。
	OnDisposeStarted(total int)
	// OnItemMoved / OnItemFailed 对应每个候选的处置结果。
	OnItemMoved(c domain.Candidate)
	OnItemFailed(c domain.Candidate, code, msg string)
	// OnRunComplete 在本次 run 收尾时调用（无论中途发生过什么，都会给出计数）。
	OnRunComplete(moved, failed int)
}

// nopObserver 让 Execute 的主流程不必到处判空。
type nopObserver struct{}

func (nopObserver) OnStart(config.EffectiveConfig)                {}
func (nopObserver) OnDriveStarted(domain.ScanRoot)                {}
func (nopObserver) OnDirectorySkipped(string)                     {}
func (nopObserver) OnDirectoryError(string, error)                {}
func (nopObserver) OnCandidateFound(domain.Candidate)             {}
func (nopObserver) OnScanProgress(string, int)                    {}
func (nopObserver) OnSummaryReady([]domain.Candidate)             {}
func (nopObserver) OnDisposeStarted(int)                          {}
func (nopObserver) OnItemMoved(domain.Candidate)                  {}
func (nopObserver) OnItemFailed(domain.Candidate, string, string) {}
func (nopObserver) OnRunComplete(int, int)                        {}
