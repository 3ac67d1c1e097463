package dispose

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/cadsweep/internal/domain"
)

// fakeTrasher 把文件移进一个临时目录，模拟回收站；failOn 里的路径返回注入错误。
type fakeTrasher struct {
	dir    string
	failOn map[string]error
	puts   []string
}

func newFakeTrasher(t *testing.T) *fakeTrasher {
	return &fakeTrasher{dir: t.TempDir(), failOn: map[string]error{}}
}

func (f *fakeTrasher) Put(path string) error {
	f.puts = append(f.puts, path)
	if err, ok := f.failOn[path]; ok {
		return err
	}
	return os.Rename(path, filepath.Join(f.dir, filepath.Base(path)))
}

func candidateFixture(t *testing.T, n int) []domain.Candidate {
	t.Helper()
	root := t.TempDir()
	cands := make([]domain.Candidate, 0, n)
	for i := 0; i < n; i++ {
		name := string(rune('a' + i))
		orig := filepath.Join(root, name+".dwg")
		bak := filepath.Join(root, name+".bak")
		require.NoError(t, os.WriteFile(orig, []byte("o"), 0o644))
		require.NoError(t, os.WriteFile(bak, []byte("b"), 0o644))
		cands = append(cands, domain.Candidate{
			BackupAbs:   bak,
			Kind:        domain.KindAutoCAD,
			OriginalAbs: orig,
		})
	}
	return cands
}

func TestDispose_NotConfirmedIsNoOp(t *testing.T) {
	cands := candidateFixture(t, 2)
	tr := newFakeTrasher(t)

	results := Dispose(context.Background(), cands, false, tr, Callbacks{})

	require.Nil(t, results, "confirmed=false 必须零结果")
	require.Empty(t, tr.puts, "confirmed=false 绝不允许触碰文件系统")
	for _, c := range cands {
		_, err := os.Stat(c.BackupAbs)
		require.NoError(t, err, "备份文件必须原样保留")
	}
}

func TestDispose_EveryCandidateExactlyOnce(t *testing.T) {
	cands := candidateFixture(t, 3)
	tr := newFakeTrasher(t)

	results := Dispose(context.Background(), cands, true, tr, Callbacks{})

	require.Len(t, results, 3)
	for i, res := range results {
		require.Equal(t, cands[i], res.Candidate)
		require.Equal(t, domain.DispositionMoved, res.Status)
		_, err := os.Stat(res.Candidate.BackupAbs)
		require.True(t, os.IsNotExist(err), "moved 的备份文件必须从原位置消失")
		_, err = os.Stat(res.Candidate.OriginalAbs)
		require.NoError(t, err, "原始文件必须原封不动")
	}
}

func TestDispose_OneFailureDoesNotBlockOthers(t *testing.T) {
	cands := candidateFixture(t, 3)
	tr := newFakeTrasher(t)
	tr.failOn[cands[1].BackupAbs] = errors.New("injected: quota exceeded")

	var moved, failed int
	results := Dispose(context.Background(), cands, true, tr, Callbacks{
		OnMoved:  func(domain.Candidate) { moved++ },
		OnFailed: func(domain.Candidate, string, string) { failed++ },
	})

	require.Len(t, results, 3)
	require.Equal(t, domain.DispositionMoved, results[0].Status)
	require.Equal(t, domain.DispositionFailed, results[1].Status)
	require.Equal(t, domain.ErrCodeTrashFailed, results[1].ErrorCode)
	require.Contains(t, results[1].ErrorMsg, "quota exceeded")
	require.Equal(t, domain.DispositionMoved, results[2].Status)
	require.Equal(t, 2, moved)
	require.Equal(t, 1, failed)
}

func TestDispose_MissingAtDisposalTime(t *testing.T) {
	cands := candidateFixture(t, 2)
	tr := newFakeTrasher(t)

	// 收集与处置之间文件被外部删掉。
	require.NoError(t, os.Remove(cands[0].BackupAbs))

	results := Dispose(context.Background(), cands, true, tr, Callbacks{})

	require.Len(t, results, 2)
	require.Equal(t, domain.DispositionFailed, results[0].Status)
	require.Equal(t, domain.ErrCodeMissingAtDisposal, results[0].ErrorCode)
	require.Equal(t, domain.DispositionMoved, results[1].Status)
}

func TestDispose_CancelBetweenItems(t *testing.T) {
	cands := candidateFixture(t, 3)
	tr := newFakeTrasher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Dispose(ctx, cands, true, tr, Callbacks{})
	require.Empty(t, results, "取消后不应再处置任何条目")
	require.Empty(t, tr.puts)
}
