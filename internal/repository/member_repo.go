package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smash-signup/internal/model"
)

// MemberRepository 社员数据访问接口
type MemberRepository interface {
	GetByStudentID(ctx context.Context, studentID string) (*model.Member, error)
	Upsert(ctx context.Context, member *model.Member) error
	Count(ctx context.Context) (int64, error)
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo 创建 MemberRepository 实例
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) GetByStudentID(ctx context.Context, studentID string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert 按学号新建或覆盖（名册导入路径）
func (r *memberRepo) Upsert(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "updated_at"}),
	}).Create(member).Error
}

func (r *memberRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&n).Error
	return n, err
}
