// Package exclude 实现目录排除策略：纯谓词，扫描器据此决定是否下钻。
package exclude

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Set 是一次 run 内不可变的排除集合。
//
// 两类规则：
// - prefixes：绝对路径前缀匹配（路径本身或其子树）
// - 回收站目录名：按目录 basename 匹配，树中任意深度都生效
type Set struct {
	prefixes []string
	fold     bool // 大小写不敏感（Windows/macOS 文件系统约定）
}

// Build 从运行环境计算排除集合，并合并配置提供的额外目录。
//
// 内置规则（原工具约定）：
// - 用户 profile 私有目录（Windows: %AppData% 一族；Unix: ~/.local/share、~/.cache、~/.config）
// - 系统安装树（Windows: %ProgramFiles%、%WINDIR%；Unix: /proc、/sys、/dev、/run）
// - 不存在的目录直接丢弃（谓词更便宜，也便于日志核对）
//
// extra 均按绝对路径处理；相对路径相对 cwd 解析。
func Build(extra []string) Set {
	defs := make([]string, 0, 8+len(extra))

	if home, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "windows" {
			defs = append(defs, filepath.Join(home, "AppData"))
		} else {
			defs = append(defs,
				filepath.Join(home, ".local", "share"),
				filepath.Join(home, ".cache"),
				filepath.Join(home, ".config"),
			)
		}
	}

	switch runtime.GOOS {
	case "windows":
		for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)", "WINDIR"} {
			if v := os.Getenv(env); v != "" {
				defs = append(defs, v)
			}
		}
	default:
		defs = append(defs, "/proc", "/sys", "/dev", "/run")
	}

	defs = append(defs, extra...)

	return newSet(defs, runtime.GOOS == "windows" || runtime.GOOS == "darwin")
}

// newSet 供测试直接构造（绕过环境探测）。
func newSet(defs []string, fold bool) Set {
	prefixes := make([]string, 0, len(defs))
	for _, d := range defs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil {
			continue
		}
		abs = filepath.Clean(abs)
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			continue
		}
		prefixes = append(prefixes, abs)
	}
	return Set{prefixes: prefixes, fold: fold}
}

// Matches 判断目录是否应整体跳过（含其子树）。
// 扫描器对每个访问到的目录调用一次，因此 basename 检查天然覆盖“任意深度的回收站目录”。
func (s Set) Matches(dir string) bool {
	dir = filepath.Clean(dir)

	if isRecycleName(filepath.Base(dir)) {
		return true
	}

	cmp := dir
	if s.fold {
		cmp = strings.ToLower(cmp)
	}
	for _, p := range s.prefixes {
		base := p
		if s.fold {
			base = strings.ToLower(base)
		}
		if isUnder(cmp, base) {
			return true
		}
	}
	return false
}

// 回收站目录名只做精确匹配（统一小写比较）。
// 刻意不做子串匹配：名为 "AppData Archive" 之类的项目目录不应被误杀。
var recycleNames = map[string]struct{}{
	"$recycle.bin": {},
	"recycler":     {},
	"recycled":     {},
	".trash":       {},
}

func isRecycleName(name string) bool {
	n := strings.ToLower(name)
	if _, ok := recycleNames[n]; ok {
		return true
	}
	// freedesktop 卷级回收站：.Trash-<uid>（任意 uid 都算）。
	if rest, ok := strings.CutPrefix(n, ".trash-"); ok {
		if _, err := strconv.Atoi(rest); err == nil {
			return true
		}
	}
	return false
}

func isUnder(path, base string) bool {
	if path == base {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(path, base+sep)
}
