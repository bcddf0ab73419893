package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smash-signup/internal/model"
)

// OverrideRepository 边界覆盖数据访问接口
type OverrideRepository interface {
	List(ctx context.Context) ([]model.BoundaryOverride, error)
	Upsert(ctx context.Context, ov *model.BoundaryOverride) error
	DeleteAll(ctx context.Context) error
}

type overrideRepo struct {
	db *gorm.DB
}

// NewOverrideRepo 创建 OverrideRepository 实例
func NewOverrideRepo(db *gorm.DB) OverrideRepository {
	return &overrideRepo{db: db}
}

func (r *overrideRepo) List(ctx context.Context) ([]model.BoundaryOverride, error) {
	var ovs []model.BoundaryOverride
	err := r.db.WithContext(ctx).Find(&ovs).Error
	return ovs, err
}

// Upsert 按 (lane_id, boundary) 新建或覆盖
func (r *overrideRepo) Upsert(ctx context.Context, ov *model.BoundaryOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lane_id"}, {Name: "boundary"}},
		DoUpdates: clause.AssignmentColumns([]string{"at", "updated_at"}),
	}).Create(ov).Error
}

func (r *overrideRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.BoundaryOverride{}).Error
}
