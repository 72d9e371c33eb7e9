package redistore

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "briefcase:instances:"

// Store 基于 Redis Hash 的去重存储实现：每个表单一个 hash，
// field 为实例ID，value 为本地目录。
type Store struct{ rdb redis.Cmdable }

// New 创建 Store；接受 redis.Cmdable 以便传入单机客户端或集群客户端。
func New(rdb redis.Cmdable) *Store { return &Store{rdb: rdb} }

func formKey(formID string) string { return keyPrefix + formID }

// HasRecordedInstance 实现 pull.Storage.HasRecordedInstance。
func (s *Store) HasRecordedInstance(ctx context.Context, formID, instanceID string) (bool, error) {
	return s.rdb.HExists(ctx, formKey(formID), instanceID).Result()
}

// PutRecordedInstanceDirectory 实现 pull.Storage.PutRecordedInstanceDirectory。
func (s *Store) PutRecordedInstanceDirectory(ctx context.Context, formID, instanceID, dir string) error {
	return s.rdb.HSet(ctx, formKey(formID), instanceID, dir).Err()
}

// ListRecordedInstances 实现 pull.Storage.ListRecordedInstances。
func (s *Store) ListRecordedInstances(ctx context.Context, formID string) ([]string, error) {
	ids, err := s.rdb.HKeys(ctx, formKey(formID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
