package scheduler

import (
	"context"

	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"

	"smash-signup/config"
	"smash-signup/internal/service"
)

// 每周六 00:00:01 执行翻转，和报名周期错开一秒避免边界歧义
const rolloverCron = "1 0 0 ? * SAT"

// Scheduler 定时作业调度器，当前只挂载每周翻转一个作业
type Scheduler struct {
	cfg    *config.Config
	quartz quartz.Scheduler
	svc    *service.Service
	logger *zap.Logger
}

// New 创建 Scheduler 实例
func New(cfg *config.Config, svc *service.Service, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		quartz: quartz.NewStdScheduler(),
		svc:    svc,
		logger: logger,
	}
}

// Start 注册作业并启动调度循环
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Signup.RolloverEnabled {
		s.logger.Info("每周翻转作业已禁用，调度器不启动")
		return nil
	}

	loc, err := s.cfg.Signup.Location()
	if err != nil {
		return err
	}
	trigger, err := quartz.NewCronTriggerWithLoc(rolloverCron, loc)
	if err != nil {
		return err
	}

	job := &rolloverJob{svc: s.svc.Rollover, logger: s.logger}
	detail := quartz.NewJobDetail(job, quartz.NewJobKey("weekly-rollover"))
	if err := s.quartz.ScheduleJob(detail, trigger); err != nil {
		return err
	}

	s.quartz.Start(ctx)
	s.logger.Info("定时调度器已启动", zap.String("cron", rolloverCron))
	return nil
}

// Stop 停止调度并等待在途作业结束
func (s *Scheduler) Stop(ctx context.Context) {
	s.quartz.Stop()
	s.quartz.Wait(ctx)
}

// ── 每周翻转作业 ──

type rolloverJob struct {
	svc    service.RolloverService
	logger *zap.Logger
}

func (j *rolloverJob) Execute(ctx context.Context) error {
	path, err := j.svc.Rollover(ctx)
	if err != nil {
		j.logger.Error("每周翻转作业执行失败", zap.Error(err))
		return err
	}
	j.logger.Info("每周翻转作业执行完成", zap.String("backup", path))
	return nil
}

func (j *rolloverJob) Description() string {
	return "weekly-rollover"
}
