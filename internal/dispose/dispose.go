// Package dispose 实现两阶段流程的第二阶段：把候选清单逐项移入回收站。
// 这是整个仓库里唯一会改动文件系统的组件，且只通过回收站间接处置。
package dispose

import (
	"context"
	"os"

	"github.com/John-Robertt/cadsweep/internal/domain"
)

// Trasher 是回收站原语的最小契约（生产实现是 trashx.Trash）。
type Trasher interface {
	Put(path string) error
}

// Callbacks 把逐项处置进度交给上层（全部可为 nil）。
type Callbacks struct {
	OnMoved  func(c domain.Candidate)
	OnFailed func(c domain.Candidate, code, msg string)
}

// Dispose 逐项处置候选清单。
//
// 规则（硬约束）：
// - confirmed=false：不做任何文件系统改动，返回 nil（上层报告“已取消”）
// - confirmed=true：每个候选恰好产出一条结果（moved 或 failed）
// - 单条失败绝不中断后续条目
// - ctx 取消在条目间生效：已处理的结果完整返回，未处理的不补记
func Dispose(ctx context.Context, cands []domain.Candidate, confirmed bool, tr Trasher, cb Callbacks) []domain.DispositionResult {
	if !confirmed || len(cands) == 0 {
		return nil
	}

	results := make([]domain.DispositionResult, 0, len(cands))
	for _, c := range cands {
		if ctx.Err() != nil {
			break
		}
		results = append(results, disposeOne(c, tr, cb))
	}
	return results
}

func disposeOne(c domain.Candidate, tr Trasher, cb Callbacks) domain.DispositionResult {
	res := domain.DispositionResult{Candidate: c, Status: domain.DispositionMoved}

	// 收集与处置之间文件可能被外部改动：消失按单条失败处理。
	if _, err := os.Lstat(c.BackupAbs); err != nil {
		return failed(c, cb, domain.ErrCodeMissingAtDisposal, err.Error())
	}

	if err := tr.Put(c.BackupAbs); err != nil {
		code := domain.ErrCodeTrashFailed
		if os.IsNotExist(err) {
			code = domain.ErrCodeMissingAtDisposal
		}
		return failed(c, cb, code, err.Error())
	}

	if cb.OnMoved != nil {
		cb.OnMoved(c)
	}
	return res
}

func failed(c domain.Candidate, cb Callbacks, code, msg string) domain.DispositionResult {
	if cb.OnFailed != nil {
		cb.OnFailed(c, code, msg)
	}
	return domain.DispositionResult{
		Candidate: c,
		Status:    domain.DispositionFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}
