package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Member       MemberRepository
	Application  ApplicationRepository
	SystemConfig SystemConfigRepository
	Override     OverrideRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Member:       NewMemberRepo(db),
		Application:  NewApplicationRepo(db),
		SystemConfig: NewSystemConfigRepo(db),
		Override:     NewOverrideRepo(db),
	}
}
