package job

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRunner(t *testing.T) {
	Convey("failures reach the callback without cancelling siblings", t, func() {
		r := NewRunner(context.Background(), 4)

		var mu sync.Mutex
		var failures []error
		r.OnError(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			failures = append(failures, err)
		})

		var succeeded atomic.Int32
		boom := errors.New("boom")
		for i := 0; i < 3; i++ {
			LaunchAsync(r, Supply(func(*RunnerStatus) Outcome[int] {
				return OK(1)
			}), func(int) { succeeded.Add(1) })
		}
		LaunchAsync(r, Supply(func(*RunnerStatus) Outcome[int] {
			return Fail[int](boom)
		}), func(int) { succeeded.Add(1) })
		r.WaitAll()

		So(succeeded.Load(), ShouldEqual, 3)
		mu.Lock()
		defer mu.Unlock()
		So(failures, ShouldHaveLength, 1)
		So(errors.Is(failures[0], boom), ShouldBeTrue)
	})

	Convey("a panicking job is reported as a failure, not a crash", t, func() {
		r := NewRunner(context.Background(), 2)

		var mu sync.Mutex
		var failures []error
		r.OnError(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			failures = append(failures, err)
		})

		LaunchAsync(r, Supply(func(*RunnerStatus) Outcome[int] {
			panic("worker exploded")
		}), nil)
		r.WaitAll()

		mu.Lock()
		defer mu.Unlock()
		So(failures, ShouldHaveLength, 1)
		So(failures[0].Error(), ShouldContainSubstring, "worker exploded")
	})

	Convey("the concurrency limit bounds simultaneously running jobs", t, func() {
		const limit = 2
		r := NewRunner(context.Background(), limit)

		var inFlight, peak atomic.Int32
		for i := 0; i < 8; i++ {
			LaunchAsync(r, Supply(func(*RunnerStatus) Outcome[struct{}] {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				inFlight.Add(-1)
				return OK(struct{}{})
			}), nil)
		}
		r.WaitAll()
		So(peak.Load(), ShouldBeLessThanOrEqualTo, limit)
	})

	Convey("Cancel propagates to every job through the shared status", t, func() {
		r := NewRunner(context.Background(), 1)
		r.Cancel()

		var sawCancelled atomic.Bool
		LaunchAsync(r, Supply(func(rs *RunnerStatus) Outcome[struct{}] {
			sawCancelled.Store(rs.IsCancelled())
			return OK(struct{}{})
		}), nil)
		r.WaitAll()
		So(sawCancelled.Load(), ShouldBeTrue)
	})
}
