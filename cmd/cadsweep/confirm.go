package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"

	"github.com/John-Robertt/cadsweep/internal/app/run"
	"github.com/John-Robertt/cadsweep/internal/domain"
)

// errAborted 表示用户用 Ctrl+C 打断了确认过程（等同拒绝，由 run 层兜底）。
var errAborted = errors.New("确认被用户中断")

// confirmBatch 返回交互式批量确认策略：
// 先完整列出候选清单，再做一次 yes/no 决定（没有逐文件确认）。
func confirmBatch(w io.Writer) run.Decider {
	return func(cands []domain.Candidate) (bool, error) {
		fmt.Fprintln(w)
		printCandidateTable(w, cands)
		fmt.Fprintln(w)

		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("确认把以上 %d 个备份文件全部移入回收站？[y/N]", len(cands)),
			IsConfirm: true,
		}
		_, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, io.EOF) {
				return false, errAborted
			}
			// promptui 对 "n"/空输入返回 ErrAbort：正常拒绝。
			if errors.Is(err, promptui.ErrAbort) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}

func printCandidateTable(w io.Writer, cands []domain.Candidate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "类型", "备份文件", "原始文件"})

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for i, c := range cands {
		table.Append([]string{
			strconv.Itoa(i + 1),
			kindLabel(c.Kind),
			c.BackupAbs,
			c.OriginalAbs,
		})
	}
	table.Render()
}

func kindLabel(k domain.BackupKind) string {
	switch k {
	case domain.KindAutoCAD:
		return "AutoCAD"
	case domain.KindSketchUp:
		return "SketchUp"
	default:
		return string(k)
	}
}
