package pairing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/John-Robertt/cadsweep/internal/domain"
)

func TestKindFor(t *testing.T) {
	cases := []struct {
		ext  string
		want domain.BackupKind
		ok   bool
	}{
		{".bak", domain.KindAutoCAD, true},
		{".BAK", domain.KindAutoCAD, true},
		{".skb", domain.KindSketchUp, true},
		{".dwg", "", false},
		{".tmp", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := KindFor(c.ext)
		if ok != c.ok || got != c.want {
			t.Fatalf("KindFor(%q)=(%q,%v)，期望 (%q,%v)", c.ext, got, ok, c.want, c.ok)
		}
	}
}

func TestFindOriginal_SiblingExists(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "draft.dwg"))
	touch(t, filepath.Join(dir, "draft.bak"))

	got, ok := FindOriginal(filepath.Join(dir, "draft.bak"))
	if !ok {
		t.Fatalf("期望配对成功")
	}
	if want := filepath.Join(dir, "draft.dwg"); got != want {
		t.Fatalf("期望原始文件 %q，实际 %q", want, got)
	}
}

func TestFindOriginal_NoSibling(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "orphan.bak"))

	if _, ok := FindOriginal(filepath.Join(dir, "orphan.bak")); ok {
		t.Fatalf("没有同目录原始文件时不允许配对成功")
	}
}

func TestFindOriginal_SameDirectoryOnly(t *testing.T) {
	dir := t.TempDir()
	// 原始文件在父目录：不算（绝不跨目录搜索）。
	touch(t, filepath.Join(dir, "model.skp"))
	touch(t, filepath.Join(dir, "sub", "model.skb"))

	if _, ok := FindOriginal(filepath.Join(dir, "sub", "model.skb")); ok {
		t.Fatalf("只允许同目录配对")
	}
}

func TestFindOriginal_OriginalIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "x.dwg"), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	touch(t, filepath.Join(dir, "x.bak"))

	if _, ok := FindOriginal(filepath.Join(dir, "x.bak")); ok {
		t.Fatalf("目录不算“原始文件存在”")
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}
