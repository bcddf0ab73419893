package service

import (
	"go.uber.org/zap"

	"smash-signup/config"
	"smash-signup/internal/repository"
	"smash-signup/pkg/clock"
	"smash-signup/pkg/jwt"
	"smash-signup/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Timer    TimerService
	Signup   SignupService
	Member   MemberService
	Backup   BackupService
	Rollover RolloverService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	timer := NewTimerService(repo, clk, logger)
	member := NewMemberService(repo, logger)
	backup := NewBackupService(cfg, repo, clk, logger)

	return &Service{
		Auth:     NewAuthService(cfg, jwtMgr, rdb, logger),
		Timer:    timer,
		Signup:   NewSignupService(repo, member, timer, logger),
		Member:   member,
		Backup:   backup,
		Rollover: NewRolloverService(repo, backup, timer, logger),
	}
}
