// Package scan 实现单个扫描根的目录遍历与候选收集。
package scan

import (
	"context"
	"os"
	"path/filepath"

	"github.com/John-Robertt/cadsweep/internal/domain"
	"github.com/John-Robertt/cadsweep/internal/exclude"
	"github.com/John-Robertt/cadsweep/internal/pairing"
)

// 通过可替换的函数指针，让测试能对指定目录稳定注入读取失败。
var readDirFunc = os.ReadDir

// Stats 是单个扫描根的遍历计数。
type Stats struct {
	Dirs    int // 成功列出的目录数
	Skipped int // 被排除策略剪枝的目录数
	Failed  int // 列出失败（权限/IO）的目录数
}

// Callbacks 把遍历过程中的事件交给上层（全部可为 nil）。
//
// 约束：
// - scan 只发事件，不做任何输出/日志（展示由上层决定）
// - OnDirectory 仅是进度提示，不影响正确性
type Callbacks struct {
	OnDirectory func(dir string, visited int)
	OnSkipped   func(dir string)
	OnError     func(dir string, err error)
	OnCandidate func(c domain.Candidate)
}

// Scan 自顶向下遍历 root，产出候选清单。
//
// 规则（硬约束）：
// - 命中排除集合的目录：发 skipped 事件并整体剪枝
// - 列出失败的目录：发 error 事件并剪枝，兄弟目录继续（单点失败不中断）
// - 符号链接一律不跟随（防环、防策略绕过）
// - 候选只在同目录原始文件确认存在时产生（配对规则）
//
// 遍历阶段只做 ReadDir + 配对 stat，不读文件内容。
// ctx 取消在目录间生效：返回已收集的部分结果与 ctx.Err()。
func Scan(ctx context.Context, root string, set exclude.Set, cb Callbacks) ([]domain.Candidate, Stats, error) {
	root = filepath.Clean(root)

	s := &scanner{set: set, cb: cb}
	s.cands = make([]domain.Candidate, 0, 16)

	err := s.walk(ctx, root)
	return s.cands, s.stats, err
}

type scanner struct {
	set   exclude.Set
	cb    Callbacks
	cands []domain.Candidate
	stats Stats
}

func (s *scanner) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.set.Matches(dir) {
		s.stats.Skipped++
		if s.cb.OnSkipped != nil {
			s.cb.OnSkipped(dir)
		}
		return nil
	}

	entries, err := readDirFunc(dir)
	if err != nil {
		s.stats.Failed++
		if s.cb.OnError != nil {
			s.cb.OnError(dir, err)
		}
		return nil
	}

	s.stats.Dirs++
	if s.cb.OnDirectory != nil {
		s.cb.OnDirectory(dir, s.stats.Dirs)
	}

	// 先处理文件再下钻子目录（与 os.ReadDir 的字典序一起保证遍历顺序稳定）。
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		kind, ok := pairing.KindFor(filepath.Ext(name))
		if !ok {
			continue
		}
		backupAbs := filepath.Join(dir, name)
		originalAbs, ok := pairing.FindOriginal(backupAbs)
		if !ok {
			continue
		}
		c := domain.Candidate{BackupAbs: backupAbs, Kind: kind, OriginalAbs: originalAbs}
		s.cands = append(s.cands, c)
		if s.cb.OnCandidate != nil {
			s.cb.OnCandidate(c)
		}
	}

	for _, e := range entries {
		// DirEntry 对符号链接报告 ModeSymlink 而非目录，因此这里天然不跟随链接。
		if !e.IsDir() {
			continue
		}
		if err := s.walk(ctx, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
