// Package trashx 实现 freedesktop Trash 规范的最小子集：
// 把文件移入 <Trash>/files/ 并写入配套的 <Trash>/info/*.trashinfo。
//
// 这是本仓库里唯一允许“处置”文件的原语；它从不做永久删除，
// 回收站里的文件可以随时手工恢复。
package trashx

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// 通过可替换的函数指针，让测试能稳定模拟 EXDEV 等错误。
var (
	renameFunc = os.Rename
	nowFunc    = time.Now
)

// Trash 绑定到一个回收站目录（files/ + info/ 二级结构）。
type Trash struct {
	filesDir string
	infoDir  string
}

// New 返回用户主回收站（$XDG_DATA_HOME/Trash，默认 ~/.local/share/Trash）。
func New() (*Trash, error) {
	base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("定位用户主目录失败：%w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return NewAt(filepath.Join(base, "Trash")), nil
}

// NewAt 绑定到指定回收站根目录（测试与特殊场景用）。
func NewAt(dir string) *Trash {
	dir = filepath.Clean(dir)
	return &Trash{
		filesDir: filepath.Join(dir, "files"),
		infoDir:  filepath.Join(dir, "info"),
	}
}

// Put 把 path 移入回收站。
//
// 步骤（顺序即约束）：
// 1) 以 O_CREATE|O_EXCL 占位 info 文件，解决同名冲突（name、name.2、name.3 …）
// 2) 写入 trashinfo（原路径 + 删除时间），确保恢复信息先于移动落盘
// 3) rename 进 files/；跨盘（EXDEV）退化为 copy+sync+remove（目标仍是回收站，可恢复性不变）
//
// 任一步失败都会清理占位 info 文件，源文件保持原样。
func (t *Trash) Put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)

	if _, err := os.Lstat(abs); err != nil {
		return err
	}

	if err := os.MkdirAll(t.filesDir, 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(t.infoDir, 0o700); err != nil {
		return err
	}

	name, infoF, err := t.reserveName(filepath.Base(abs))
	if err != nil {
		return err
	}
	infoPath := filepath.Join(t.infoDir, name+".trashinfo")

	cleanup := func() {
		_ = infoF.Close()
		_ = os.Remove(infoPath)
	}

	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapePath(abs), nowFunc().Format("2006-01-02T15:04:05"))
	if _, err := io.WriteString(infoF, info); err != nil {
		cleanup()
		return err
	}
	if err := infoF.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := infoF.Close(); err != nil {
		_ = os.Remove(infoPath)
		return err
	}

	dst := filepath.Join(t.filesDir, name)
	if err := renameFunc(abs, dst); err != nil {
		if isEXDEV(err) {
			if err := copyThenRemove(abs, dst); err != nil {
				_ = os.Remove(infoPath)
				return err
			}
			return nil
		}
		_ = os.Remove(infoPath)
		return err
	}
	return nil
}

// reserveName 用 info 文件的 O_EXCL 创建作为命名锁（freedesktop 约定）。
func (t *Trash) reserveName(base string) (string, *os.File, error) {
	name := base
	for i := 1; ; i++ {
		if i > 1 {
			name = fmt.Sprintf("%s.%d", base, i)
		}
		f, err := os.OpenFile(filepath.Join(t.infoDir, name+".trashinfo"),
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, err
		}
		if i >= 10000 {
			return "", nil, fmt.Errorf("回收站同名条目过多：%q", base)
		}
	}
}

// escapePath 按 trashinfo 约定对路径做百分号转义（保留 '/' 分隔符）。
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// copyThenRemove 是跨盘移动的退化路径：先完整落盘再删源文件。
// 任何写入/同步失败都会删除半成品，源文件不动。
func copyThenRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func isEXDEV(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}
	var le *os.LinkError
	return errors.As(err, &le) && errors.Is(le.Err, syscall.EXDEV)
}
