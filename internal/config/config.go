package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

// ConfigFileName 是可选配置文件名（固定在 cwd 下发现）。
const ConfigFileName = "cadsweep.json"

// CLIArgs 只包含 CLI 暴露的入口项，并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --yes=false 必须能覆盖 config.yes=true。
type CLIArgs struct {
	Roots []string

	Yes    bool
	YesSet bool

	DryRun    bool
	DryRunSet bool

	ExcludeDirs []string

	LogDir    string
	LogDirSet bool
}

// FileConfig 对应 cadsweep.json 的解析结构。
type FileConfig struct {
	Roots       []string `json:"roots"`
	Yes         *bool    `json:"yes"`
	DryRun      *bool    `json:"dry_run"`
	ExcludeDirs []string `json:"exclude_dirs"`
	LogDir      string   `json:"log_dir"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
//（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Roots 非空时跳过卷枚举，只扫描指定目录（均已 clean + absolute）。
	Roots []string

	// AutoConfirm=true 表示收集完成后不询问、直接处置（对应非交互模式）。
	AutoConfirm bool

	// DryRun=true 表示只扫描列出，绝不处置（等价于固定拒绝的确认策略）。
	DryRun bool

	// ExcludeDirs 是在内置排除之外追加的目录。
	ExcludeDirs []string

	// LogDir 是运行日志目录；空串表示默认位置（桌面，失败退回 cwd）。
	LogDir string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 <cwd>/cadsweep.json（可选）并与 CLI 参数合并。
//
// 覆盖优先级（固定）：
// - roots / exclude_dirs：CLI 与 config 取并集（CLI 在前）
// - yes / dry_run：CLI 显式指定 > config > 默认 false
// - log_dir：CLI > config > 默认（桌面）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, ConfigFileName)
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	yes := false
	if cli.YesSet {
		yes = cli.Yes
	} else if fc.Yes != nil {
		yes = *fc.Yes
	}

	dryRun := false
	if cli.DryRunSet {
		dryRun = cli.DryRun
	} else if fc.DryRun != nil {
		dryRun = *fc.DryRun
	}

	logDir := ""
	if cli.LogDirSet {
		logDir = strings.TrimSpace(cli.LogDir)
	} else {
		logDir = strings.TrimSpace(fc.LogDir)
	}

	roots := make([]string, 0, len(cli.Roots)+len(fc.Roots))
	for _, r := range append(append([]string{}, cli.Roots...), fc.Roots...) {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		roots = append(roots, absCleanFrom(cwdAbs, r))
	}

	excludes := make([]string, 0, len(cli.ExcludeDirs)+len(fc.ExcludeDirs))
	for _, x := range append(append([]string{}, cli.ExcludeDirs...), fc.ExcludeDirs...) {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		excludes = append(excludes, absCleanFrom(cwdAbs, x))
	}

	return EffectiveConfig{
		Roots:       roots,
		AutoConfirm: yes,
		DryRun:      dryRun,
		ExcludeDirs: excludes,
		LogDir:      logDir,
	}, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
