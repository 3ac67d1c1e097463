package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestRunReport_Finalize_SortSummaryUTC(t *testing.T) {
	r := RunReport{
		Roots:     []string{"/mnt/d"},
		StartedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.FixedZone("X", 8*3600)),
		FinishedAt: time.Date(2026, 8, 25, 10, 0, 1, 0,
			time.FixedZone("X", 8*3600)),
		Candidates: []Candidate{
			{BackupAbs: "/b/model.skb", Kind: KindSketchUp, OriginalAbs: "/b/model.skp"},
			{BackupAbs: "/a/draft.bak", Kind: KindAutoCAD, OriginalAbs: "/a/draft.dwg"},
		},
		Results: []DispositionResult{
			{Candidate: Candidate{BackupAbs: "/b/model.skb"}, Status: DispositionFailed, ErrorCode: ErrCodeTrashFailed},
			{Candidate: Candidate{BackupAbs: "/a/draft.bak"}, Status: DispositionMoved},
		},
	}

	r.Finalize()

	if r.Candidates[0].BackupAbs != "/a/draft.bak" || r.Results[0].Candidate.BackupAbs != "/a/draft.bak" {
		t.Fatalf("candidates/results 必须按备份路径稳定排序：%+v", r)
	}
	if r.Summary.Found != 2 || r.Summary.Moved != 1 || r.Summary.Failed != 1 {
		t.Fatalf("summary 统计不正确：%+v", r.Summary)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	// time.Time 在 UTC 下应输出 'Z' 后缀。
	if !bytes.Contains(b, []byte(`"started_at":"2026-08-25T02:00:00Z"`)) {
		t.Fatalf("started_at 不是 UTC RFC3339：%s", string(b))
	}
}

func TestRunReport_Finalize_NilSlicesBecomeEmpty(t *testing.T) {
	r := RunReport{}
	r.Finalize()

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	// JSON 里不允许出现 null 数组（对外输出稳定性）。
	if bytes.Contains(b, []byte("null")) {
		t.Fatalf("finalize 后不允许有 null 切片：%s", string(b))
	}
}
