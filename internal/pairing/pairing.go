// Package pairing 实现备份文件与原始文件的配对规则。
package pairing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/cadsweep/internal/domain"
)

// 通过可替换的函数指针，让测试能稳定模拟 stat 失败。
var statFunc = os.Stat

// 扩展名映射是封闭枚举：.bak→.dwg（AutoCAD），.skb→.skp（SketchUp）。
var originalExt = map[string]string{
	".bak": ".dwg",
	".skb": ".skp",
}

var kindByExt = map[string]domain.BackupKind{
	".bak": domain.KindAutoCAD,
	".skb": domain.KindSketchUp,
}

// KindFor 判断扩展名是否是可识别的备份扩展名（大小写不敏感）。
func KindFor(ext string) (domain.BackupKind, bool) {
	k, ok := kindByExt[strings.ToLower(ext)]
	return k, ok
}

// FindOriginal 推导 backupAbs 对应的原始文件路径，并确认其存在。
//
// 约束：
// - 只看同一目录（绝不跨目录搜索）
// - stem 保持不变，仅替换扩展名
// - 原始文件必须是普通文件（目录/设备文件不算“存在”）
func FindOriginal(backupAbs string) (string, bool) {
	ext := filepath.Ext(backupAbs)
	orig, ok := originalExt[strings.ToLower(ext)]
	if !ok {
		return "", false
	}

	originalAbs := strings.TrimSuffix(backupAbs, ext) + orig
	fi, err := statFunc(originalAbs)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return originalAbs, true
}
