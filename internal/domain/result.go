package domain

const (
	// DispositionMoved 表示备份文件已成功移入回收站。
	DispositionMoved = "moved"
	// DispositionFailed 表示该条目处理失败（不影响其他条目）。
	DispositionFailed = "failed"
)

const (
	ErrCodeVolumeUnavailable = "volume_unavailable"
	ErrCodeDirAccessDenied   = "dir_access_denied"
	ErrCodeDirIOError        = "dir_io_error"
	ErrCodeMissingAtDisposal = "missing_at_disposal"
	ErrCodeTrashFailed       = "trash_failed"
	ErrCodeNoVolumes         = "no_volumes"
	ErrCodeConfigInvalid     = "config_invalid"
)

// DispositionResult 是单个 Candidate 的最终处置结果。
// 每个 Candidate 至多对应一条（confirmed=false 时一条都没有）。
type DispositionResult struct {
	Candidate Candidate `json:"candidate"`
	Status    string    `json:"status"` // moved | failed
	ErrorCode string    `json:"error_code"`
	ErrorMsg  string    `json:"error_msg"`
}

// RunError 是卷级/目录级的非致命错误记录（报告用，不中断运行）。
type RunError struct {
	Path      string `json:"path"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}
