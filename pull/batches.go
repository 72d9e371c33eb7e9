package pull

import (
	"context"

	"github.com/FrankApiyo/briefcase/client"
)

// InstanceIdBatch 一页枚举结果：有序的提交实例ID序列与继续本页之后的游标。
// 构造后不可变。
type InstanceIdBatch struct {
	instanceIDs []string
	cursor      Cursor
}

// NewInstanceIdBatch 构造批次。
func NewInstanceIdBatch(instanceIDs []string, cursor Cursor) InstanceIdBatch {
	return InstanceIdBatch{instanceIDs: instanceIDs, cursor: cursor}
}

// InstanceIDs 按服务端返回顺序的实例ID。
func (b InstanceIdBatch) InstanceIDs() []string { return b.instanceIDs }

// Cursor 本页之后的续传游标。
func (b InstanceIdBatch) Cursor() Cursor { return b.cursor }

// Count 本页实例数。
func (b InstanceIdBatch) Count() int { return len(b.instanceIDs) }

// BatchGetter 惰性遍历 submissionList 端点：每次 HasNext 恰好发起一次网络往返，
// 返回空ID列表即终止。页间不做预取，便于取消时立即停止。
type BatchGetter struct {
	api               client.AggregateAPI
	formID            string
	includeIncomplete bool
	entriesPerBatch   int

	cursor Cursor
	next   *InstanceIdBatch
	err    error
}

// NewBatchGetter 构造枚举器；start 为起始游标（可为空游标）。
func NewBatchGetter(api client.AggregateAPI, formID string, includeIncomplete bool, entriesPerBatch int, start Cursor) *BatchGetter {
	return &BatchGetter{
		api:               api,
		formID:            formID,
		includeIncomplete: includeIncomplete,
		entriesPerBatch:   entriesPerBatch,
		cursor:            start,
	}
}

// HasNext 拉取下一页并缓存；返回 false 表示枚举结束（空页）或出错（见 Err）。
func (g *BatchGetter) HasNext(ctx context.Context) bool {
	if g.err != nil {
		return false
	}
	page, err := g.api.FetchInstanceIDPage(ctx, g.formID, g.cursor.Value(), g.entriesPerBatch, g.includeIncomplete)
	if err != nil {
		g.err = err
		return false
	}
	if len(page.InstanceIDs) == 0 {
		return false
	}
	// 服务端未带游标或游标畸形时沿用上一页的游标
	if page.ResumptionCursor != "" {
		if parsed, err := CursorFromXML(page.ResumptionCursor); err == nil {
			g.cursor = parsed
		}
	}
	b := NewInstanceIdBatch(page.InstanceIDs, g.cursor)
	g.next = &b
	return true
}

// Next 返回最近一次 HasNext 缓存的批次。
func (g *BatchGetter) Next() InstanceIdBatch {
	b := *g.next
	g.next = nil
	return b
}

// Err 返回枚举过程中遇到的传输错误（若有）。
func (g *BatchGetter) Err() error { return g.err }
