package pull

import (
	"context"
	"os"
	"path/filepath"

	"github.com/FrankApiyo/briefcase/client"
	"github.com/FrankApiyo/briefcase/form"
	"github.com/FrankApiyo/briefcase/job"
	"github.com/FrankApiyo/briefcase/logging"
	"github.com/FrankApiyo/briefcase/metrics"
)

// PullFromAggregate 单个表单的端到端增量拉取编排：
// 表单定义、附件清单对比、提交枚举、逐提交/逐附件下载、对本地存储去重。
// 同一表单同一时刻只允许一个拉取在运行（见 Storage 的单写者约定）。
type PullFromAggregate struct {
	api     client.AggregateAPI
	store   Storage
	opt     Options
	onEvent func(form.FormStatusEvent)
}

// pullConfig 聚合可选项。
type pullConfig struct {
	opt     Options
	store   Storage
	onEvent func(form.FormStatusEvent)
}

// Option 拉取引擎可选项。
type Option func(*pullConfig)

// WithStorage 指定去重存储；缺省使用内置内存存储。
func WithStorage(s Storage) Option { return func(c *pullConfig) { c.store = s } }

// WithOnEvent 注册状态变更通知回调（显式观察者，不使用全局事件总线）。
func WithOnEvent(fn func(form.FormStatusEvent)) Option {
	return func(c *pullConfig) { c.onEvent = fn }
}

// WithBriefcaseDir 指定本地 briefcase 根目录。
func WithBriefcaseDir(dir string) Option {
	return func(c *pullConfig) { c.opt.BriefcaseDir = dir }
}

// WithEntriesPerBatch 指定 submissionList 单页条数。
func WithEntriesPerBatch(n int) Option {
	return func(c *pullConfig) { c.opt.EntriesPerBatch = n }
}

// WithIncludeIncomplete 是否包含未完成提交。
func WithIncludeIncomplete(b bool) Option {
	return func(c *pullConfig) { c.opt.IncludeIncomplete = b }
}

// WithMaxParallelPulls 顶层任务并发上限（应与传输层连接上限一致）。
func WithMaxParallelPulls(n int) Option {
	return func(c *pullConfig) { c.opt.MaxParallelPulls = n }
}

// New 创建拉取引擎。
// 功能：按 With... 可选项组合出引擎；未显式传入存储实现时默认使用内置内存存储。
func New(api client.AggregateAPI, opts ...Option) *PullFromAggregate {
	cfg := &pullConfig{}
	for _, fn := range opts {
		fn(cfg)
	}
	cfg.opt.withDefaults()
	p := &PullFromAggregate{api: api, opt: cfg.opt, onEvent: cfg.onEvent}
	if cfg.store != nil {
		p.store = cfg.store
	} else {
		// 避免 import cycle：默认使用包内置的内存实现
		p.store = newDefaultMemStore()
	}
	return p
}

// Options 返回生效的运行参数。
func (p *PullFromAggregate) Options() Options { return p.opt }

// NewRunner 创建与本引擎并发上限一致的顶层任务执行器。
func (p *PullFromAggregate) NewRunner(parent context.Context) *job.Runner {
	return job.NewRunner(parent, p.opt.MaxParallelPulls)
}

// Pull 组装单个表单的拉取任务（不立即执行）。
// 算法：三路并行（表单定义 / 批次枚举 / 清单对比并下载附件），合流后
// 基于表单定义生成提交 key，按批次顺序逐个下载未记录的提交及其附件并落库。
// 结果携带全部批次中观察到的最大游标；每次网络操作前都轮询取消信号。
func (p *PullFromAggregate) Pull(f *form.FormStatus, lastCursor *Cursor) *job.Job[job.Outcome[PullResult]] {
	tracker := NewTracker(f, p.onEvent)
	start := EmptyCursor()
	if lastCursor != nil {
		start = *lastCursor
	}

	m := metrics.CollectStorageMetric(context.Background(), p.opt.BriefcaseDir)
	logging.L().Info(context.Background(), "preparing pull",
		"run", tracker.RunID(), "form", f.FormID,
		"diskUsedGB", m.DiskUsedGB, "diskUsageRatio", m.DiskUsageRatio)

	formJob := job.Supply(func(rs *job.RunnerStatus) string {
		return p.downloadForm(f, rs, tracker)
	})
	batchesJob := job.Supply(func(rs *job.RunnerStatus) []InstanceIdBatch {
		return p.getSubmissions(f, start, rs, tracker)
	})
	attachmentsJob := job.ThenAccept(
		job.Supply(func(rs *job.RunnerStatus) []client.MediaFile {
			return p.getFormAttachments(f, rs, tracker)
		}),
		func(rs *job.RunnerStatus, attachments []client.MediaFile) {
			for _, a := range attachments {
				p.downloadFormAttachment(f, a, rs, tracker)
			}
		},
	)

	return job.ThenApply(job.AllOf3(formJob, batchesJob, attachmentsJob),
		func(rs *job.RunnerStatus, t job.Triple[string, []InstanceIdBatch, struct{}]) job.Outcome[PullResult] {
			return p.recordSubmissions(f, t.First, t.Second, rs, tracker)
		})
}

// recordSubmissions 合流阶段：去重、下载、落库，并推导结果游标。
// 条目级失败只记录并跳过；存储层失败作为顶层失败上抛。
func (p *PullFromAggregate) recordSubmissions(f *form.FormStatus, formXML string, batches []InstanceIdBatch, rs *job.RunnerStatus, tracker *Tracker) job.Outcome[PullResult] {
	if len(batches) == 0 {
		// 枚举完全未发生（启动即取消），不产生新的续传点
		return job.OK(ResultWithoutCursor(f))
	}
	// 表单定义缺失时无法生成提交 key，提交下载整体跳过（错误已在下载侧记录）
	if formXML != "" {
		subKeyGen, err := NewSubmissionKeyGenerator(formXML)
		if err != nil {
			return job.Fail[PullResult](err)
		}
		ctx := rs.Context()
		for _, batch := range batches {
			for _, instanceID := range batch.InstanceIDs() {
				recorded, err := p.store.HasRecordedInstance(ctx, f.FormID, instanceID)
				if err != nil {
					return job.Fail[PullResult](err)
				}
				if recorded {
					continue
				}
				sub := p.downloadSubmission(f, instanceID, subKeyGen, rs, tracker)
				if sub == nil {
					continue
				}
				for _, att := range sub.Attachments {
					p.downloadSubmissionAttachment(f, sub.InstanceID, att, rs, tracker)
				}
				dir := f.SubmissionDir(p.opt.BriefcaseDir, sub.InstanceID)
				if err := p.store.PutRecordedInstanceDirectory(ctx, f.FormID, sub.InstanceID, dir); err != nil {
					return job.Fail[PullResult](err)
				}
			}
		}
	}
	return job.OK(ResultOf(f, lastCursorOf(batches)))
}

// lastCursorOf 取全部批次游标的最大值作为续传点。
func lastCursorOf(batches []InstanceIdBatch) Cursor {
	last := batches[0].Cursor()
	for _, b := range batches[1:] {
		last = MaxCursor(last, b.Cursor())
	}
	return last
}

// downloadForm 下载空白表单定义并写入本地；失败只记录，返回空串。
func (p *PullFromAggregate) downloadForm(f *form.FormStatus, rs *job.RunnerStatus, tracker *Tracker) string {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Download form")
		return ""
	}
	formXML, err := p.api.FetchFormXML(rs.Context(), f.FormID)
	if err != nil {
		tracker.TrackError("Error downloading form", err)
		return ""
	}
	target := f.FormFile(p.opt.BriefcaseDir)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		tracker.TrackError("Error writing form file", err)
		return ""
	}
	if err := os.WriteFile(target, []byte(formXML), 0o644); err != nil {
		tracker.TrackError("Error writing form file", err)
		return ""
	}
	tracker.TrackFormDownloaded()
	return formXML
}

// getSubmissions 从起始游标开始枚举全部批次；页间轮询取消信号，
// 已取得的批次在取消后照常保留。
func (p *PullFromAggregate) getSubmissions(f *form.FormStatus, start Cursor, rs *job.RunnerStatus, tracker *Tracker) []InstanceIdBatch {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Get submissions")
		return nil
	}
	// 起始游标固定入列，保证结果总能携带续传点
	batches := []InstanceIdBatch{NewInstanceIdBatch(nil, start)}
	pager := NewBatchGetter(p.api, f.FormID, p.opt.IncludeIncomplete, p.opt.EntriesPerBatch, start)
	for rs.IsStillRunning() && pager.HasNext(rs.Context()) {
		batches = append(batches, pager.Next())
	}
	if err := pager.Err(); err != nil {
		tracker.TrackError("Error getting instance id batches", err)
	}
	tracker.TrackBatches(batches)
	return batches
}

// getFormAttachments 获取清单并对比本地附件目录，仅返回需要下载的子集。
func (p *PullFromAggregate) getFormAttachments(f *form.FormStatus, rs *job.RunnerStatus, tracker *Tracker) []client.MediaFile {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Get form attachments")
		return nil
	}
	if f.ManifestURL == "" {
		return nil
	}
	attachments, err := p.api.FetchManifest(rs.Context(), f.ManifestURL)
	if err != nil {
		tracker.TrackError("Error getting form attachments", err)
		return nil
	}
	mediaDir := f.FormMediaDir(p.opt.BriefcaseDir)
	toDownload := make([]client.MediaFile, 0, len(attachments))
	for _, m := range attachments {
		if needsUpdate(m, mediaDir) {
			toDownload = append(toDownload, m)
		}
	}
	tracker.TrackMediaFiles(len(attachments), len(toDownload))
	return toDownload
}

// downloadFormAttachment 下载单个表单附件到本地附件目录。
func (p *PullFromAggregate) downloadFormAttachment(f *form.FormStatus, m client.MediaFile, rs *job.RunnerStatus, tracker *Tracker) {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Download form attachment " + m.Filename)
		return
	}
	target := f.FormMediaFile(p.opt.BriefcaseDir, m.Filename)
	if err := p.api.DownloadTo(rs.Context(), m.DownloadURL, target); err != nil {
		tracker.TrackError("Error downloading form attachment "+m.Filename, err)
		return
	}
	tracker.FormAttachmentDownloaded(m)
}

// downloadSubmission 下载单个提交信封并写入本地；失败只记录并返回 nil。
func (p *PullFromAggregate) downloadSubmission(f *form.FormStatus, instanceID string, subKeyGen *SubmissionKeyGenerator, rs *job.RunnerStatus, tracker *Tracker) *client.Submission {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Download submission " + instanceID)
		return nil
	}
	sub, err := p.api.FetchSubmission(rs.Context(), subKeyGen.BuildKey(instanceID))
	if err != nil {
		tracker.TrackError("Error downloading submission "+instanceID, err)
		return nil
	}
	if sub.InstanceID == "" {
		sub.InstanceID = instanceID
	}
	target := f.SubmissionFile(p.opt.BriefcaseDir, sub.InstanceID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		tracker.TrackError("Error writing submission "+sub.InstanceID, err)
		return nil
	}
	if err := os.WriteFile(target, []byte(sub.XML), 0o644); err != nil {
		tracker.TrackError("Error writing submission "+sub.InstanceID, err)
		return nil
	}
	tracker.TrackSubmission()
	return sub
}

// downloadSubmissionAttachment 下载提交附件到提交目录。
func (p *PullFromAggregate) downloadSubmissionAttachment(f *form.FormStatus, instanceID string, m client.MediaFile, rs *job.RunnerStatus, tracker *Tracker) {
	if rs.IsCancelled() {
		tracker.TrackCancellation("Download submission attachment " + m.Filename + " of " + instanceID)
		return
	}
	target := f.SubmissionMediaFile(p.opt.BriefcaseDir, instanceID, m.Filename)
	if err := p.api.DownloadTo(rs.Context(), m.DownloadURL, target); err != nil {
		tracker.TrackError("Error downloading attachment "+m.Filename+" of submission "+instanceID, err)
		return
	}
	tracker.SubmissionAttachmentDownloaded(instanceID, m)
}
