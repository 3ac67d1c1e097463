package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEffective_Defaults(t *testing.T) {
	cwd := t.TempDir()

	eff, err := LoadEffective(cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.AutoConfirm || eff.DryRun {
		t.Fatalf("默认必须是交互确认 + 非 dry-run：%+v", eff)
	}
	if len(eff.Roots) != 0 || len(eff.ExcludeDirs) != 0 {
		t.Fatalf("无输入时 roots/excludes 必须为空：%+v", eff)
	}
}

func TestLoadEffective_FileMerge(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{
		"roots": ["data"],
		"yes": true,
		"exclude_dirs": ["/abs/skip", "rel/skip"],
		"log_dir": "/var/log/cadsweep"
	}`)

	eff, err := LoadEffective(cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !eff.AutoConfirm {
		t.Fatalf("config.yes=true 必须生效")
	}
	if want := filepath.Join(cwd, "data"); len(eff.Roots) != 1 || eff.Roots[0] != want {
		t.Fatalf("相对 root 必须相对 cwd 解析：%v", eff.Roots)
	}
	if len(eff.ExcludeDirs) != 2 || eff.ExcludeDirs[0] != filepath.Clean("/abs/skip") ||
		eff.ExcludeDirs[1] != filepath.Join(cwd, "rel", "skip") {
		t.Fatalf("exclude_dirs 解析不正确：%v", eff.ExcludeDirs)
	}
	if eff.LogDir != "/var/log/cadsweep" {
		t.Fatalf("log_dir 不正确：%q", eff.LogDir)
	}
}

func TestLoadEffective_CLIOverridesFile(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{"yes": true, "dry_run": true}`)

	eff, err := LoadEffective(cwd, CLIArgs{
		Yes:       false,
		YesSet:    true,
		DryRun:    false,
		DryRunSet: true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	// 显式的 --yes=false / --dry-run=false 必须能压过配置文件。
	if eff.AutoConfirm || eff.DryRun {
		t.Fatalf("CLI 显式指定必须覆盖配置：%+v", eff)
	}
}

func TestLoadEffective_CLIRootsFirst(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{"roots": ["/from/config"]}`)

	eff, err := LoadEffective(cwd, CLIArgs{Roots: []string{"/from/cli"}})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(eff.Roots) != 2 || eff.Roots[0] != filepath.Clean("/from/cli") {
		t.Fatalf("CLI roots 必须排在前面：%v", eff.Roots)
	}
}

func TestLoadEffective_InvalidJSON(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{not json`)

	_, err := LoadEffective(cwd, CLIArgs{})
	if err == nil {
		t.Fatalf("坏配置必须报错")
	}
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 error_code=%s，实际 %q", ErrCodeInvalid, Code(err))
	}
}

func writeConfig(t *testing.T, cwd, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cwd, ConfigFileName), []byte(body), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}
}
