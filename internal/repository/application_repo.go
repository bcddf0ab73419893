package repository

import (
	"context"

	"gorm.io/gorm"

	"smash-signup/internal/model"
)

// ApplicationRepository 报名记录数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	Exists(ctx context.Context, studentID, day, category string) (bool, error)
	DeleteByMember(ctx context.Context, studentID, day, category string) (int64, error)
	ListByDay(ctx context.Context, day string) ([]model.Application, error)
	ListAll(ctx context.Context) ([]model.Application, error)
	DeleteByLane(ctx context.Context, day, category string) (int64, error)
	DeleteAll(ctx context.Context) error
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) Exists(ctx context.Context, studentID, day, category string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ? AND day = ? AND category = ?", studentID, day, category).
		Count(&n).Error
	return n > 0, err
}

// DeleteByMember 删除某社员在指定通道的报名，返回删除行数（0 行即无报名记录）
func (r *applicationRepo) DeleteByMember(ctx context.Context, studentID, day, category string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("student_id = ? AND day = ? AND category = ?", studentID, day, category).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

// ListByDay 按报名先后排序的当日名单（预加载社员姓名）
func (r *applicationRepo) ListByDay(ctx context.Context, day string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).Preload("Member").
		Where("day = ?", day).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListAll(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).Preload("Member").
		Order("day ASC, category ASC, created_at ASC").
		Find(&apps).Error
	return apps, err
}

// DeleteByLane 清空单条通道的名单（管理员修改规则后手动触发）
func (r *applicationRepo) DeleteByLane(ctx context.Context, day, category string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("day = ? AND category = ?", day, category).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

// DeleteAll 清空全部名单（每周翻转作业）
func (r *applicationRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Application{}).Error
}
