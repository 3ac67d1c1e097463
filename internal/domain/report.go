package domain

import (
	"sort"
	"time"
)

// RunReport 是对外稳定输出（stdout JSON / 日志摘要）的结构。
type RunReport struct {
	Roots     []string `json:"roots"`
	DryRun    bool     `json:"dry_run"`
	Confirmed bool     `json:"confirmed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`

	Candidates []Candidate         `json:"candidates"`
	Results    []DispositionResult `json:"results"`
	Errors     []RunError          `json:"errors"`
}

type ReportSummary struct {
	RootsScanned int `json:"roots_scanned"`
	DirsVisited  int `json:"dirs_visited"`
	DirsSkipped  int `json:"dirs_skipped"`
	DirsFailed   int `json:"dirs_failed"`
	Found        int `json:"found"`
	Moved        int `json:"moved"`
	Failed       int `json:"failed"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) candidates/results 稳定排序：按备份文件绝对路径字典序
// 3) summary 的 found/moved/failed 由 candidates/results 计算得出
//
// 注意：RootsScanned/Dirs* 计数由 run 层累加，Finalize 不重算。
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Roots == nil {
		r.Roots = []string{}
	}
	if r.Candidates == nil {
		r.Candidates = []Candidate{}
	}
	if r.Results == nil {
		r.Results = []DispositionResult{}
	}
	if r.Errors == nil {
		r.Errors = []RunError{}
	}

	sort.SliceStable(r.Candidates, func(i, j int) bool {
		return r.Candidates[i].BackupAbs < r.Candidates[j].BackupAbs
	})
	sort.SliceStable(r.Results, func(i, j int) bool {
		return r.Results[i].Candidate.BackupAbs < r.Results[j].Candidate.BackupAbs
	})

	r.Summary.Found = len(r.Candidates)
	r.Summary.Moved = 0
	r.Summary.Failed = 0
	for _, res := range r.Results {
		switch res.Status {
		case DispositionMoved:
			r.Summary.Moved++
		case DispositionFailed:
			r.Summary.Failed++
		}
	}
}
