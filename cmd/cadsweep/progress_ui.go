package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/John-Robertt/cadsweep/internal/app/run"
	"github.com/John-Robertt/cadsweep/internal/config"
	"github.com/John-Robertt/cadsweep/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端的进度输出：扫描阶段一个 spinner，处置阶段一个计数条。
//
// 设计目标：
// - 所有过程信息写到 stderr，不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 目录名刷新做节流，避免深目录树把终端刷成噪音
type progressUI struct {
	w io.Writer

	scanBar    *progressbar.ProgressBar
	disposeBar *progressbar.ProgressBar

	lastDesc time.Time
	found    int
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	mode := "交互确认"
	if eff.DryRun {
		mode = "dry-run（只列出，不处置）"
	} else if eff.AutoConfirm {
		mode = "自动处置（--yes）"
	}
	fmt.Fprintf(p.w, "[%s] cadsweep run（%s）\n", time.Now().Format("15:04:05"), mode)
}

func (p *progressUI) OnDriveStarted(root domain.ScanRoot) {
	p.finishScanBar()
	fmt.Fprintf(p.w, "\n===== 开始扫描：%s =====\n", root.Mount)
	if !root.Readable {
		fmt.Fprintln(p.w, "  卷不可读，跳过")
		return
	}
	p.scanBar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("扫描中"),
	)
}

func (p *progressUI) OnScanProgress(dir string, visited int) {
	if p.scanBar == nil {
		return
	}
	_ = p.scanBar.Add(1)
	// 目录名刷新节流到 10 次/秒。
	if time.Since(p.lastDesc) > 100*time.Millisecond {
		p.scanBar.Describe(fmt.Sprintf("扫描中 [%d] %s", visited, truncatePath(dir, 60)))
		p.lastDesc = time.Now()
	}
}

func (p *progressUI) OnDirectorySkipped(string) {
	// 排除属于正常剪枝，交互输出里保持安静（详情在日志里）。
}

func (p *progressUI) OnDirectoryError(dir string, err error) {
	p.clearScanBar()
	fmt.Fprintf(p.w, "  无法访问：%s（%v）\n", truncatePath(dir, 60), err)
}

func (p *progressUI) OnCandidateFound(c domain.Candidate) {
	p.found++
	p.clearScanBar()
	fmt.Fprintf(p.w, "  候选 %d：%s\n", p.found, c.BackupAbs)
}

func (p *progressUI) OnSummaryReady(cands []domain.Candidate) {
	p.finishScanBar()
	fmt.Fprintf(p.w, "\n全部卷扫描完成，共找到 %d 个可清理的备份文件。\n", len(cands))
}

func (p *progressUI) OnDisposeStarted(total int) {
	fmt.Fprintln(p.w, "\n正在移入回收站……")
	p.disposeBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("移入回收站"),
	)
}

func (p *progressUI) OnItemMoved(domain.Candidate) {
	if p.disposeBar != nil {
		_ = p.disposeBar.Add(1)
	}
}

func (p *progressUI) OnItemFailed(c domain.Candidate, code, msg string) {
	if p.disposeBar != nil {
		_ = p.disposeBar.Clear()
	}
	fmt.Fprintf(p.w, "  失败：%s（%s：%s）\n", c.BackupAbs, code, msg)
	if p.disposeBar != nil {
		_ = p.disposeBar.Add(1)
	}
}

func (p *progressUI) OnRunComplete(moved, failed int) {
	if p.disposeBar != nil {
		_ = p.disposeBar.Finish()
		p.disposeBar = nil
		fmt.Fprintln(p.w)
	}
}

func (p *progressUI) clearScanBar() {
	if p.scanBar != nil {
		_ = p.scanBar.Clear()
	}
}

func (p *progressUI) finishScanBar() {
	if p.scanBar != nil {
		_ = p.scanBar.Finish()
		p.scanBar = nil
		fmt.Fprintln(p.w)
	}
}

// truncatePath 把长路径压缩到 max 字符以内（保留尾部，更有辨识度）。
func truncatePath(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[len(s)-max:]
	}
	return "..." + s[len(s)-(max-3):]
}
