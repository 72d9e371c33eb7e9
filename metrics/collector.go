package metrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// StorageMetric briefcase 存储目录所在磁盘的容量快照。
type StorageMetric struct {
	DiskTotalGB    float64
	DiskUsedGB     float64
	DiskUsageRatio float64
}

// CollectStorageMetric 采集目录所在磁盘的容量信息，用于拉取开始前的日志留痕。
// 采集失败时返回零值快照，不影响拉取流程。
func CollectStorageMetric(ctx context.Context, dir string) StorageMetric {
	var out StorageMetric
	if du, err := disk.UsageWithContext(ctx, dir); err == nil && du.Total > 0 {
		out.DiskTotalGB = float64(du.Total) / (1024 * 1024 * 1024)
		out.DiskUsedGB = float64(du.Used) / (1024 * 1024 * 1024)
		out.DiskUsageRatio = du.UsedPercent / 100.0
	}
	return out
}
