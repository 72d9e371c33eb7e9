package pull

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/FrankApiyo/briefcase/client"
	"github.com/FrankApiyo/briefcase/form"
	"github.com/FrankApiyo/briefcase/logging"
	"github.com/google/uuid"
)

// Tracker 将拉取过程中的编排事件翻译为结构化日志、表单状态串与状态变更通知。
// 纯观察者：不持有控制流，不影响重试或跳过决策。
type Tracker struct {
	runID   string
	form    *form.FormStatus
	onEvent func(form.FormStatusEvent)

	total   int
	counter atomic.Int64
}

// NewTracker 构造 Tracker；onEvent 可为 nil。
func NewTracker(f *form.FormStatus, onEvent func(form.FormStatusEvent)) *Tracker {
	return &Tracker{runID: uuid.NewString(), form: f, onEvent: onEvent}
}

// RunID 本次拉取的运行标识。
func (t *Tracker) RunID() string { return t.runID }

// TrackFormDownloaded 空白表单下载完成。
func (t *Tracker) TrackFormDownloaded() {
	t.notify("Downloaded blank form")
}

// TrackBatches 枚举完成，记录待下载提交总数。
func (t *Tracker) TrackBatches(batches []InstanceIdBatch) {
	total := 0
	for _, b := range batches {
		total += b.Count()
	}
	t.total = total
	t.notify(fmt.Sprintf("Downloading %d submissions", total))
}

// TrackSubmission 单个提交下载完成。
func (t *Tracker) TrackSubmission() {
	n := t.counter.Add(1)
	t.notify(fmt.Sprintf("Downloaded submission %d of %d", n, t.total))
}

// TrackMediaFiles 清单对比结果：需要下载与已存在的附件数。
func (t *Tracker) TrackMediaFiles(totalInManifest, toDownload int) {
	if toDownload > 0 {
		t.notify(fmt.Sprintf("Downloaded %d attachments", toDownload))
	}
	if skipped := totalInManifest - toDownload; skipped > 0 {
		t.notify(fmt.Sprintf("Ignoring %d attachments (already present)", skipped))
	}
}

// FormAttachmentDownloaded 表单附件下载完成。
func (t *Tracker) FormAttachmentDownloaded(m client.MediaFile) {
	logging.L().Debug(context.Background(), "downloaded form attachment",
		"run", t.runID, "form", t.form.FormID, "filename", m.Filename)
}

// SubmissionAttachmentDownloaded 提交附件下载完成。
func (t *Tracker) SubmissionAttachmentDownloaded(instanceID string, m client.MediaFile) {
	logging.L().Debug(context.Background(), "downloaded submission attachment",
		"run", t.runID, "form", t.form.FormID, "iid", instanceID, "filename", m.Filename)
}

// TrackError 记录一次非致命错误（条目级失败，拉取继续）。
func (t *Tracker) TrackError(msg string, err error) {
	logging.L().Error(context.Background(), msg,
		"run", t.runID, "form", t.form.FormID, "err", err)
	t.notify(msg)
}

// TrackCancellation 记录一次取消造成的提前退出；取消不是错误。
func (t *Tracker) TrackCancellation(operation string) {
	logging.L().Warn(context.Background(), "operation cancelled",
		"run", t.runID, "form", t.form.FormID, "operation", operation)
	t.notify("Cancelled: " + operation)
}

func (t *Tracker) notify(status string) {
	t.form.SetStatusString(status)
	logging.L().Info(context.Background(), status, "run", t.runID, "form", t.form.FormID)
	if t.onEvent != nil {
		t.onEvent(form.FormStatusEvent{RunID: t.runID, FormID: t.form.FormID, Status: status})
	}
}
