package job

import "context"

// RunnerStatus 一次运行中所有任务共享的协作式取消信号。
// 说明：取消是建议性的——工作函数在每次阻塞操作（网络请求、文件写入）之前
// 自行轮询，已发出的操作照常完成，引擎从不强行终止任务。
type RunnerStatus struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRunnerStatus 基于父上下文构造；父级取消会同步反映到本状态。
func NewRunnerStatus(parent context.Context) *RunnerStatus {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &RunnerStatus{ctx: ctx, cancel: cancel}
}

// Cancel 发出取消信号；幂等。
func (s *RunnerStatus) Cancel() { s.cancel() }

// IsCancelled 是否已取消。
func (s *RunnerStatus) IsCancelled() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// IsStillRunning 是否仍在运行（即未取消）。
func (s *RunnerStatus) IsStillRunning() bool { return !s.IsCancelled() }

// Context 返回底层上下文，供需要 ctx 的阻塞调用透传。
func (s *RunnerStatus) Context() context.Context { return s.ctx }
