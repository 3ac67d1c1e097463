// Package drives 负责枚举扫描根（本机已挂载、可读写的存储卷）。
package drives

import (
	"os"
	"slices"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/John-Robertt/cadsweep/internal/domain"
)

// 通过可替换的函数指针，让测试能注入假的分区表/枚举失败。
var partitionsFunc = disk.Partitions

// ListScanRoots 枚举所有可作为扫描根的挂载点。
//
// 规则（原工具约定）：
// - 只要物理设备分区（all=false 已过滤 proc/sysfs 等伪文件系统）
// - 只收 rw 挂载，且挂载点确实是目录
// - Readable 按“能否打开挂载点”探测；不可读的卷保留在结果里，由上层报告后跳过
// - 顺序保持 OS 返回顺序（稳定枚举）
//
// 只有整体枚举失败才返回 error；单个卷的问题不影响其他卷。
func ListScanRoots() ([]domain.ScanRoot, error) {
	parts, err := partitionsFunc(false)
	if err != nil {
		return nil, err
	}

	roots := make([]domain.ScanRoot, 0, len(parts))
	for _, p := range parts {
		if !slices.Contains(p.Opts, "rw") {
			continue
		}
		fi, err := os.Stat(p.Mountpoint)
		if err != nil || !fi.IsDir() {
			continue
		}
		roots = append(roots, domain.ScanRoot{
			Mount:    p.Mountpoint,
			Fstype:   p.Fstype,
			Readable: mountReadable(p.Mountpoint),
		})
	}
	return roots, nil
}

// RootsFromPaths 把用户显式指定的目录转换为 ScanRoot（跳过卷枚举）。
// 不存在/不是目录的路径也会进入结果（Readable=false），由上层统一报告。
func RootsFromPaths(paths []string) []domain.ScanRoot {
	roots := make([]domain.ScanRoot, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		readable := err == nil && fi.IsDir() && mountReadable(p)
		roots = append(roots, domain.ScanRoot{Mount: p, Readable: readable})
	}
	return roots
}

func mountReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
