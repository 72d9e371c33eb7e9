package pull

// Options 拉取引擎运行参数。
type Options struct {
	BriefcaseDir      string // 本地 briefcase 根目录
	EntriesPerBatch   int    // submissionList 单页条数
	IncludeIncomplete bool   // 是否包含未完成提交
	MaxParallelPulls  int    // 顶层任务并发上限，应与传输层连接上限一致
}

// withDefaults 填充默认值。
func (o *Options) withDefaults() {
	if o.BriefcaseDir == "" {
		o.BriefcaseDir = "."
	}
	if o.EntriesPerBatch <= 0 {
		o.EntriesPerBatch = 100
	}
	if o.MaxParallelPulls <= 0 {
		o.MaxParallelPulls = 8
	}
}
