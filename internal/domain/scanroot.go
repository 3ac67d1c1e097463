package domain

// ScanRoot 描述一个待扫描的存储卷挂载点。
// 由 drives 枚举得到；一次 run 内不可变，扫描完即弃。
type ScanRoot struct {
	Mount    string
	Fstype   string
	Readable bool
}
