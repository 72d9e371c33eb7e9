package form

import (
	"path/filepath"
	"strings"
	"sync"
)

// FormStatus 表示一个被拉取表单的身份、远端清单地址与本地状态串。
// 状态串仅由 Tracker 更新，供宿主界面或日志展示，不参与任何控制流。
type FormStatus struct {
	FormID      string
	Name        string
	Version     string
	ManifestURL string

	mu     sync.RWMutex
	status string
}

// NewFormStatus 构造 FormStatus。manifestURL 可为空，表示表单未声明附件清单。
func NewFormStatus(formID, name, manifestURL string) *FormStatus {
	return &FormStatus{FormID: formID, Name: name, ManifestURL: manifestURL}
}

// SetStatusString 更新状态串。
func (f *FormStatus) SetStatusString(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

// StatusString 读取当前状态串。
func (f *FormStatus) StatusString() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// ---- 本地目录布局 ----
// briefcaseDir/
//   forms/<name>/<name>.xml
//   forms/<name>/<name>-media/<附件>
//   forms/<name>/instances/<净化后的实例ID>/submission.xml（附件同目录）

// FormDir 表单根目录。
func (f *FormStatus) FormDir(briefcaseDir string) string {
	return filepath.Join(briefcaseDir, "forms", f.Name)
}

// FormFile 空白表单定义文件路径。
func (f *FormStatus) FormFile(briefcaseDir string) string {
	return filepath.Join(f.FormDir(briefcaseDir), f.Name+".xml")
}

// FormMediaDir 表单附件目录。
func (f *FormStatus) FormMediaDir(briefcaseDir string) string {
	return filepath.Join(f.FormDir(briefcaseDir), f.Name+"-media")
}

// FormMediaFile 某个表单附件的本地路径。
func (f *FormStatus) FormMediaFile(briefcaseDir, filename string) string {
	return filepath.Join(f.FormMediaDir(briefcaseDir), filename)
}

// SubmissionDir 某次提交的本地目录。
func (f *FormStatus) SubmissionDir(briefcaseDir, instanceID string) string {
	return filepath.Join(f.FormDir(briefcaseDir), "instances", scrubInstanceID(instanceID))
}

// SubmissionFile 提交内容文件路径。
func (f *FormStatus) SubmissionFile(briefcaseDir, instanceID string) string {
	return filepath.Join(f.SubmissionDir(briefcaseDir, instanceID), "submission.xml")
}

// SubmissionMediaFile 提交附件的本地路径。
func (f *FormStatus) SubmissionMediaFile(briefcaseDir, instanceID, filename string) string {
	return filepath.Join(f.SubmissionDir(briefcaseDir, instanceID), filename)
}

// scrubInstanceID 去掉实例ID中不适合做目录名的冒号（如 uuid: 前缀）。
func scrubInstanceID(instanceID string) string {
	return strings.ReplaceAll(instanceID, ":", "")
}

// FormStatusEvent 状态变更通知，由 Tracker 通过回调发布。
type FormStatusEvent struct {
	RunID  string // 本次拉取的运行标识
	FormID string
	Status string
}
