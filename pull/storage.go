package pull

import "context"

// Storage 本地去重存储接口（可由宿主实现或使用内置 memstore/gormstore/redistore）。
// 记录的是“已完整下载”的提交实例；has/put 非原子，同一表单同一时刻只允许一个
// 拉取在运行，由调用方保证（单写者约定）。
type Storage interface {
	// HasRecordedInstance 实例是否已记录为完整下载。
	HasRecordedInstance(ctx context.Context, formID, instanceID string) (bool, error)
	// PutRecordedInstanceDirectory 将实例记录为完整下载，并保存其本地目录。
	PutRecordedInstanceDirectory(ctx context.Context, formID, instanceID, dir string) error
	// ListRecordedInstances 列出某表单已记录的全部实例ID。
	ListRecordedInstances(ctx context.Context, formID string) ([]string, error)
}
