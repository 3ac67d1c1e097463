package domain

// BackupKind 标识备份文件所属的 CAD 软件。
type BackupKind string

const (
	// KindAutoCAD 对应 .bak（原始文件 .dwg）。
	KindAutoCAD BackupKind = "autocad"
	// KindSketchUp 对应 .skb（原始文件 .skp）。
	KindSketchUp BackupKind = "sketchup"
)

// Candidate 是一个已确认可清理的备份文件。
//
// 不变量（实现必须遵守）：
// - BackupAbs / OriginalAbs 必须是 clean + absolute
// - 只有在扫描时同目录下确认存在对应原始文件，才允许产生 Candidate
type Candidate struct {
	BackupAbs   string     `json:"backup"`
	Kind        BackupKind `json:"kind"`
	OriginalAbs string     `json:"original"`
}
