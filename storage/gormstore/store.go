package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// model 映射到数据库表：一条记录代表一个已完整下载的提交实例。
type model struct {
	ID         uint      `gorm:"primaryKey"`
	FormID     string    `gorm:"uniqueIndex:idx_form_instance;size:191"`
	InstanceID string    `gorm:"uniqueIndex:idx_form_instance;size:191"`
	Directory  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Store 基于 GORM 的去重存储实现。
type Store struct{ db *gorm.DB }

// New 创建 Store，调用方应自行在外部执行 AutoMigrate(&Model{}).
func New(db *gorm.DB) *Store { return &Store{db: db} }

// Model 返回迁移用的表结构实体。
func Model() any { return &model{} }

// HasRecordedInstance 实现 pull.Storage.HasRecordedInstance。
func (s *Store) HasRecordedInstance(ctx context.Context, formID, instanceID string) (bool, error) {
	var m model
	err := s.db.WithContext(ctx).
		Where("form_id = ? AND instance_id = ?", formID, instanceID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutRecordedInstanceDirectory 实现 pull.Storage.PutRecordedInstanceDirectory。
func (s *Store) PutRecordedInstanceDirectory(ctx context.Context, formID, instanceID, dir string) error {
	m := model{FormID: formID, InstanceID: instanceID, Directory: dir}
	return s.db.WithContext(ctx).
		Where("form_id = ? AND instance_id = ?", formID, instanceID).
		Assign(map[string]any{"directory": dir}).
		FirstOrCreate(&m).Error
}

// ListRecordedInstances 实现 pull.Storage.ListRecordedInstances。
func (s *Store) ListRecordedInstances(ctx context.Context, formID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&model{}).
		Where("form_id = ?", formID).
		Order("instance_id").
		Pluck("instance_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
