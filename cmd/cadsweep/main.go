package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadsweep",
	Short: "安全清理 CAD/3D 建模软件留下的备份文件",
	Long: `cadsweep 扫描本机存储卷，找出 AutoCAD (.bak) 与 SketchUp (.skb) 的备份文件，
仅当同目录下存在对应的原始文件 (.dwg / .skp) 时才列为清理候选。
处置一律走回收站（可恢复），绝不直接删除。`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
