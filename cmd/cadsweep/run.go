package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/John-Robertt/cadsweep/internal/app/run"
	"github.com/John-Robertt/cadsweep/internal/config"
	"github.com/John-Robertt/cadsweep/internal/dispose"
	"github.com/John-Robertt/cadsweep/internal/domain"
	"github.com/John-Robertt/cadsweep/internal/infra/logx"
	"github.com/John-Robertt/cadsweep/internal/infra/trashx"
)

var runFlags struct {
	paths    []string
	yes      bool
	dryRun   bool
	excludes []string
	logDir   string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "扫描并清理备份文件（默认扫描全部存储卷，处置前询问一次）",
	RunE:  runMain,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVarP(&runFlags.paths, "path", "p", nil, "只扫描指定目录（可重复；默认枚举全部可读写存储卷）")
	runCmd.Flags().BoolVarP(&runFlags.yes, "yes", "y", false, "不询问，收集完成后直接处置（非交互模式）")
	runCmd.Flags().BoolVarP(&runFlags.dryRun, "dry-run", "n", false, "只扫描列出候选，不做任何处置")
	runCmd.Flags().StringSliceVarP(&runFlags.excludes, "exclude", "x", nil, "额外排除的目录（可重复；内置排除始终生效）")
	runCmd.Flags().StringVar(&runFlags.logDir, "log-dir", "", "运行日志目录（默认桌面，失败退回当前目录）")
}

func runMain(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("读取当前目录失败：%w", err)
	}

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		Roots:       runFlags.paths,
		Yes:         runFlags.yes,
		YesSet:      cmd.Flags().Changed("yes"),
		DryRun:      runFlags.dryRun,
		DryRunSet:   cmd.Flags().Changed("dry-run"),
		ExcludeDirs: runFlags.excludes,
		LogDir:      runFlags.logDir,
		LogDirSet:   cmd.Flags().Changed("log-dir"),
	})
	if err != nil {
		return err
	}

	logger, logPath, err := logx.NewRunLogger(eff.LogDir)
	if err != nil {
		// 日志不可用不阻断清理；仅提示一次。
		fmt.Fprintf(os.Stderr, "警告：日志初始化失败（%v），本次运行不落日志\n", err)
		logger = zap.NewNop()
		logPath = ""
	}
	defer func() { _ = logger.Sync() }()

	var trasher dispose.Trasher
	if !eff.DryRun {
		t, err := trashx.New()
		if err != nil {
			return fmt.Errorf("定位回收站失败：%w", err)
		}
		trasher = t
	}

	// Ctrl+C：目录间/条目间生效；已记录的结果完整保留。
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := isTTY(os.Stderr)

	obs := []run.Observer{newLogObserver(logger)}
	var decide run.Decider
	if interactive {
		ui := newProgressUI(os.Stderr)
		obs = append(obs, ui)
		decide = confirmBatch(os.Stderr)
	}

	rr := run.Execute(ctx, eff, run.Deps{
		Obs:     multiObserver(obs),
		Decide:  decide,
		Trasher: trasher,
	})

	emitReport(rr, logPath)
	if rr.Summary.Failed > 0 {
		return fmt.Errorf("有 %d 个文件处置失败（详见日志）", rr.Summary.Failed)
	}
	return nil
}

// emitReport 遵守 stdout 契约：
// 交互终端输出人类可读摘要；非 TTY 时 stdout 只输出一个 RunReport JSON，摘要走 stderr。
func emitReport(rr domain.RunReport, logPath string) {
	summary := fmt.Sprintf("完成：found=%d moved=%d failed=%d（扫描目录 %d，跳过 %d，出错 %d）",
		rr.Summary.Found, rr.Summary.Moved, rr.Summary.Failed,
		rr.Summary.DirsVisited, rr.Summary.DirsSkipped, rr.Summary.DirsFailed,
	)

	if isTTY(os.Stdout) {
		fmt.Fprintln(os.Stdout, summary)
		if logPath != "" {
			fmt.Fprintf(os.Stdout, "日志：%s\n", logPath)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintln(os.Stderr, summary)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
