package run

import (
	"context"
	"os"
	"time"

	"github.com/John-Robertt/cadsweep/internal/config"
	"github.com/John-Robertt/cadsweep/internal/dispose"
	"github.com/John-Robertt/cadsweep/internal/domain"
	"github.com/John-Robertt/cadsweep/internal/drives"
	"github.com/John-Robertt/cadsweep/internal/exclude"
	"github.com/John-Robertt/cadsweep/internal/infra/trashx"
	"github.com/John-Robertt/cadsweep/internal/scan"
)

// Decider 是批量确认策略：对整份候选清单给出一次 yes/no。
// 交互模式由 CLI 注入提示实现；非交互模式注入常量策略。
type Decider func(cands []domain.Candidate) (bool, error)

// Deps 是 Execute 的外部协作者。零值字段会被替换为生产默认实现，
// 测试按需注入假实现即可。
type Deps struct {
	Obs       Observer
	Decide    Decider
	Trasher   dispose.Trasher
	ListRoots func() ([]domain.ScanRoot, error)
}

// Execute 执行一次完整的 收集 → 确认 → 处置 流程，并返回对外稳定的 RunReport。
//
// 错误降级策略（硬约束）：
// - 卷级失败：记录 volume_unavailable，继续其他卷
// - 目录级失败：记录 dir_access_denied / dir_io_error，继续兄弟目录
// - 条目级失败：记录 failed 结果，继续后续条目
// - 卷枚举整体失败：退化为“空结果 run”（no_volumes），不崩溃
// Execute 本身从不返回 error；一切异常都体现在报告里。
func Execute(ctx context.Context, eff config.EffectiveConfig, deps Deps) domain.RunReport {
	started := time.Now().UTC()

	obs := deps.Obs
	if obs == nil {
		obs = nopObserver{}
	}
	obs.OnStart(eff)

	rr := domain.RunReport{
		DryRun:    eff.DryRun,
		StartedAt: started,
	}

	roots := listRoots(eff, deps, &rr)
	for _, root := range roots {
		rr.Roots = append(rr.Roots, root.Mount)
	}

	if len(roots) == 0 {
		// 零扫描根不是异常：给出空结果与明确的摘要即可。
		rr.Errors = append(rr.Errors, domain.RunError{
			ErrorCode: domain.ErrCodeNoVolumes,
			ErrorMsg:  "没有可扫描的存储卷",
		})
		return finish(&rr, obs)
	}

	set := exclude.Build(eff.ExcludeDirs)

	for _, root := range roots {
		obs.OnDriveStarted(root)

		if !root.Readable {
			rr.Errors = append(rr.Errors, domain.RunError{
				Path:      root.Mount,
				ErrorCode: domain.ErrCodeVolumeUnavailable,
				ErrorMsg:  "扫描根不可读，整卷跳过",
			})
			continue
		}

		cands, stats, err := scan.Scan(ctx, root.Mount, set, scan.Callbacks{
			OnDirectory: obs.OnScanProgress,
			OnSkipped:   obs.OnDirectorySkipped,
			OnError: func(dir string, e error) {
				obs.OnDirectoryError(dir, e)
				rr.Errors = append(rr.Errors, domain.RunError{
					Path:      dir,
					ErrorCode: dirErrorCode(e),
					ErrorMsg:  e.Error(),
				})
			},
			OnCandidate: obs.OnCandidateFound,
		})

		rr.Candidates = append(rr.Candidates, cands...)
		rr.Summary.RootsScanned++
		rr.Summary.DirsVisited += stats.Dirs
		rr.Summary.DirsSkipped += stats.Skipped
		rr.Summary.DirsFailed += stats.Failed

		if err != nil {
			// 只有 ctx 取消会走到这里：带着已收集的部分结果收尾。
			return finish(&rr, obs)
		}
	}

	obs.OnSummaryReady(rr.Candidates)

	if len(rr.Candidates) == 0 {
		return finish(&rr, obs)
	}

	confirmed := decideBatch(eff, deps, rr.Candidates)
	rr.Confirmed = confirmed

	if confirmed {
		tr := deps.Trasher
		if tr == nil {
			t, err := trashx.New()
			if err != nil {
				// 回收站都定位不到就没有安全的处置路径：记录后按空处置收尾。
				rr.Errors = append(rr.Errors, domain.RunError{
					ErrorCode: domain.ErrCodeTrashFailed,
					ErrorMsg:  "定位回收站失败：" + err.Error(),
				})
				return finish(&rr, obs)
			}
			tr = t
		}

		obs.OnDisposeStarted(len(rr.Candidates))
		rr.Results = dispose.Dispose(ctx, rr.Candidates, true, tr, dispose.Callbacks{
			OnMoved:  obs.OnItemMoved,
			OnFailed: obs.OnItemFailed,
		})
	}

	return finish(&rr, obs)
}

func listRoots(eff config.EffectiveConfig, deps Deps, rr *domain.RunReport) []domain.ScanRoot {
	if len(eff.Roots) > 0 {
		return drives.RootsFromPaths(eff.Roots)
	}

	list := deps.ListRoots
	if list == nil {
		list = drives.ListScanRoots
	}
	roots, err := list()
	if err != nil {
		rr.Errors = append(rr.Errors, domain.RunError{
			ErrorCode: domain.ErrCodeNoVolumes,
			ErrorMsg:  "枚举存储卷失败：" + err.Error(),
		})
		return nil
	}
	return roots
}

func decideBatch(eff config.EffectiveConfig, deps Deps, cands []domain.Candidate) bool {
	if eff.DryRun {
		return false
	}
	if eff.AutoConfirm {
		return true
	}
	if deps.Decide == nil {
		// 没有确认策略时必须保守：宁可不动文件。
		return false
	}
	ok, err := deps.Decide(cands)
	if err != nil {
		// 确认过程被打断（Ctrl+C / EOF）等同拒绝。
		return false
	}
	return ok
}

func dirErrorCode(err error) string {
	if os.IsPermission(err) {
		return domain.ErrCodeDirAccessDenied
	}
	return domain.ErrCodeDirIOError
}

func finish(rr *domain.RunReport, obs Observer) domain.RunReport {
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	obs.OnRunComplete(rr.Summary.Moved, rr.Summary.Failed)
	return *rr
}
