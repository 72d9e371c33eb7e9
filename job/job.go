package job

import "golang.org/x/sync/errgroup"

// Job 延迟执行的工作单元：包装一个以 RunnerStatus 为入参的函数，
// 在被调度之前不会执行；结果类型由泛型参数确定。
type Job[T any] struct {
	run func(*RunnerStatus) T
}

// Supply 将工作函数包装为待执行任务。
func Supply[T any](fn func(*RunnerStatus) T) *Job[T] { return &Job[T]{run: fn} }

// Launch 在给定运行状态下同步执行任务并返回结果。
func (j *Job[T]) Launch(rs *RunnerStatus) T { return j.run(rs) }

// ThenApply 顺序续接：前序结果交给 fn 加工，绑定同一个运行状态。
func ThenApply[T, U any](j *Job[T], fn func(*RunnerStatus, T) U) *Job[U] {
	return &Job[U]{run: func(rs *RunnerStatus) U {
		return fn(rs, j.run(rs))
	}}
}

// ThenAccept 顺序续接（无返回值）。
func ThenAccept[T any](j *Job[T], fn func(*RunnerStatus, T)) *Job[struct{}] {
	return &Job[struct{}]{run: func(rs *RunnerStatus) struct{} {
		fn(rs, j.run(rs))
		return struct{}{}
	}}
}

// Triple 三元并行合并的定长结果。
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// AllOf3 并发执行三个互不依赖的任务，返回按位组合的结果。
// 单个任务的业务失败由其结果类型自行承载，不构成引擎级失败。
func AllOf3[A, B, C any](a *Job[A], b *Job[B], c *Job[C]) *Job[Triple[A, B, C]] {
	return &Job[Triple[A, B, C]]{run: func(rs *RunnerStatus) Triple[A, B, C] {
		var out Triple[A, B, C]
		g := new(errgroup.Group)
		g.Go(func() error { out.First = a.run(rs); return nil })
		g.Go(func() error { out.Second = b.run(rs); return nil })
		g.Go(func() error { out.Third = c.run(rs); return nil })
		_ = g.Wait()
		return out
	}}
}

// Outcome 顶层任务的成功值或失败原因。
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK 构造成功结果。
func OK[T any](v T) Outcome[T] { return Outcome[T]{Value: v} }

// Fail 构造失败结果。
func Fail[T any](err error) Outcome[T] { return Outcome[T]{Err: err} }
