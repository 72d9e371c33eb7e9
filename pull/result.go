package pull

import (
	"errors"

	"github.com/FrankApiyo/briefcase/form"
)

// ErrNoCursor 表示读取了一个不携带游标的拉取结果。
// 拉取至少会枚举空游标，正常构造的结果总是带游标；读到缺失即属编程错误。
var ErrNoCursor = errors.New("pull result carries no cursor")

// PullResult 一次表单拉取的终态：表单身份与全部批次中观察到的最大游标，
// 作为下次拉取的续传点。
type PullResult struct {
	form       *form.FormStatus
	lastCursor Cursor
	hasCursor  bool
}

// ResultOf 构造携带续传游标的结果。
func ResultOf(f *form.FormStatus, lastCursor Cursor) PullResult {
	return PullResult{form: f, lastCursor: lastCursor, hasCursor: true}
}

// ResultWithoutCursor 构造不带游标的结果（仅在枚举完全未发生时出现，如启动即取消）。
func ResultWithoutCursor(f *form.FormStatus) PullResult {
	return PullResult{form: f}
}

// Form 本次拉取的表单。
func (r PullResult) Form() *form.FormStatus { return r.form }

// HasCursor 是否携带续传游标。
func (r PullResult) HasCursor() bool { return r.hasCursor }

// LastCursor 返回续传游标；结果不携带游标时 panic（契约违约，见 ErrNoCursor）。
func (r PullResult) LastCursor() Cursor {
	if !r.hasCursor {
		panic(ErrNoCursor)
	}
	return r.lastCursor
}
