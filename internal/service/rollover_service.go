package service

import (
	"context"

	"go.uber.org/zap"

	"smash-signup/internal/repository"
)

// RolloverService 每周翻转业务接口
//
// 翻转顺序固定：先备份、再清空名单、最后周次 +1 并清空覆盖。
// 备份失败即中止，报名数据不得在未落盘前删除。
type RolloverService interface {
	// Rollover 执行一次每周翻转，返回备份文件路径
	Rollover(ctx context.Context) (string, error)
}

type rolloverService struct {
	repo   *repository.Repository
	backup BackupService
	timer  TimerService
	logger *zap.Logger
}

// NewRolloverService 创建 RolloverService 实例
func NewRolloverService(repo *repository.Repository, backup BackupService, timer TimerService, logger *zap.Logger) RolloverService {
	return &rolloverService{repo: repo, backup: backup, timer: timer, logger: logger}
}

func (s *rolloverService) Rollover(ctx context.Context) (string, error) {
	// 1. 备份本周报名
	path, err := s.backup.WriteBackup(ctx)
	if err != nil {
		s.logger.Error("每周翻转中止：备份失败", zap.Error(err))
		return "", err
	}

	// 2. 清空名单
	if err := s.repo.Application.DeleteAll(ctx); err != nil {
		s.logger.Error("每周翻转中止：清空名单失败", zap.Error(err))
		return path, err
	}

	// 3. 周次 +1（内部同时清空边界覆盖）
	wc, err := s.timer.IncrementWeek(ctx)
	if err != nil {
		s.logger.Error("每周翻转：周次递增失败", zap.Error(err))
		return path, err
	}

	s.logger.Info("每周翻转完成",
		zap.Int("week", wc.Week),
		zap.String("backup", path))
	return path, nil
}
