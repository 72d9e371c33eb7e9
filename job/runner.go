package job

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Runner 以受限并发执行一批相互独立的顶层任务。
// 并发上限应与传输层的最大连接数一致；任一任务失败不会影响兄弟任务，
// 失败通过 OnError 注册的回调逐个异步上报。
type Runner struct {
	rs *RunnerStatus
	g  *errgroup.Group

	mu      sync.Mutex
	onError func(error)
}

// NewRunner 构造 Runner。
// 参数：parent 父上下文（取消会传导给所有任务）；maxParallel 并发上限（<=0 不限制）。
func NewRunner(parent context.Context, maxParallel int) *Runner {
	g := new(errgroup.Group)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}
	return &Runner{rs: NewRunnerStatus(parent), g: g}
}

// OnError 注册失败回调；每个失败任务恰好调用一次。
func (r *Runner) OnError(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = fn
}

// Status 返回与本 Runner 绑定的运行状态。
func (r *Runner) Status() *RunnerStatus { return r.rs }

// Cancel 向所有任务发出协作式取消信号。
func (r *Runner) Cancel() { r.rs.Cancel() }

// WaitAll 阻塞等待所有已提交任务结束。
func (r *Runner) WaitAll() { _ = r.g.Wait() }

func (r *Runner) fail(err error) {
	r.mu.Lock()
	fn := r.onError
	r.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// LaunchAsync 提交一个顶层任务。
// 任务以 Outcome 承载成败：失败走 Runner 的失败回调，成功时调用 onDone（可为 nil）。
// 任务内部 panic 会被捕获并作为失败上报，不会拖垮兄弟任务。
func LaunchAsync[T any](r *Runner, j *Job[Outcome[T]], onDone func(T)) {
	r.g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				r.fail(fmt.Errorf("job panic: %v", p))
			}
		}()
		out := j.Launch(r.rs)
		if out.Err != nil {
			r.fail(out.Err)
			return nil
		}
		if onDone != nil {
			onDone(out.Value)
		}
		return nil
	})
}
