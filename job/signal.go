package job

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalCancel 创建一个可响应系统信号（如 SIGINT/SIGTERM）的运行状态。
// 功能：在收到进程关闭信号时自动对返回的 RunnerStatus 发出协作式取消，
// 正在进行的网络操作照常完成，后续操作不再发起。
// 参数：
//   - parent：父级上下文；
//   - signals：可选信号列表，留空则默认使用 SIGINT、SIGTERM。
//
// 返回：
//   - rs：收到任一信号后 IsCancelled() 即为 true；
//   - stop：释放底层 signal 监听的函数，通常在退出时 defer 调用。
func WithSignalCancel(parent context.Context, signals ...os.Signal) (*RunnerStatus, context.CancelFunc) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	ctx, stop := signal.NotifyContext(parent, signals...)
	return NewRunnerStatus(ctx), stop
}
