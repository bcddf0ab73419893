package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"smash-signup/internal/dto"
	"smash-signup/internal/model"
	"smash-signup/internal/repository"
	"smash-signup/internal/timerule"
)

// ── 报名模块业务错误 ──

var (
	ErrMemberAuthFailed     = errors.New("学号或密码不正确")
	ErrMemberNotFound       = errors.New("社员不存在")
	ErrDuplicateApplication = errors.New("已有该通道的报名记录")
	ErrNoApplication        = errors.New("该日没有报名记录")
)

// SignupService 报名业务接口
//
// 设计说明：
//   - 普通报名/取消：先验社员身份（bcrypt），再过时间闸门，最后落库。
//   - 管理员代报名/代取消跳过身份与时间闸门（路由侧以角色鉴权兜底），
//     替代旧系统把共享密钥混进密码字段的做法。
type SignupService interface {
	// Apply 报名
	Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplyResponse, error)
	// Cancel 取消报名
	Cancel(ctx context.Context, req *dto.CancelRequest) error
	// ProxyApply 管理员代报名（跳过时间闸门）
	ProxyApply(ctx context.Context, req *dto.ProxyApplyRequest) (*dto.ApplyResponse, error)
	// ProxyCancel 管理员代取消
	ProxyCancel(ctx context.Context, req *dto.ProxyCancelRequest) error
	// Roster 单日名单
	Roster(ctx context.Context, day timerule.Day) (*dto.RosterResponse, error)
	// ClearLaneRoster 清空单条通道的名单（规则变更后的善后），返回删除条数
	ClearLaneRoster(ctx context.Context, laneID string) (int64, error)
}

type signupService struct {
	repo   *repository.Repository
	member MemberService
	timer  TimerService
	logger *zap.Logger
}

// NewSignupService 创建 SignupService 实例
func NewSignupService(repo *repository.Repository, member MemberService, timer TimerService, logger *zap.Logger) SignupService {
	return &signupService{repo: repo, member: member, timer: timer, logger: logger}
}

// ────────────────────── Apply ──────────────────────

func (s *signupService) Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplyResponse, error) {
	// 1. 身份校验
	m, err := s.member.Verify(ctx, req.StudentID, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 时间闸门（含周五课程的固定拒绝）
	if err := s.timer.CanApply(ctx, timerule.Day(req.Day), timerule.Category(req.Category)); err != nil {
		return nil, err
	}

	// 3. 重复报名检查
	if err := s.ensureNotApplied(ctx, req.StudentID, req.Day, req.Category); err != nil {
		return nil, err
	}

	// 4. 落库
	app := &model.Application{
		StudentID: req.StudentID,
		Day:       req.Day,
		Category:  req.Category,
	}
	if req.GuestName != "" {
		app.GuestName = &req.GuestName
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("写入报名记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("报名成功",
		zap.String("student_id", req.StudentID),
		zap.String("day", req.Day),
		zap.String("category", req.Category),
	)
	return &dto.ApplyResponse{
		MemberName: m.Name,
		Day:        req.Day,
		Category:   req.Category,
		GuestName:  req.GuestName,
	}, nil
}

// ────────────────────── Cancel ──────────────────────

func (s *signupService) Cancel(ctx context.Context, req *dto.CancelRequest) error {
	if _, err := s.member.Verify(ctx, req.StudentID, req.Password); err != nil {
		return err
	}

	if err := s.timer.CanCancel(ctx, timerule.Day(req.Day), timerule.Category(req.Category)); err != nil {
		return err
	}

	return s.deleteApplication(ctx, req.StudentID, req.Day, req.Category, false)
}

// ────────────────────── 管理员代操作 ──────────────────────

func (s *signupService) ProxyApply(ctx context.Context, req *dto.ProxyApplyRequest) (*dto.ApplyResponse, error) {
	// 仍需校验通道合法性（周五课程等），但不过时间闸门
	if _, err := timerule.LaneFor(timerule.Day(req.Day), timerule.Category(req.Category)); err != nil {
		return nil, err
	}

	m, err := s.repo.Member.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	if err := s.ensureNotApplied(ctx, req.StudentID, req.Day, req.Category); err != nil {
		return nil, err
	}

	app := &model.Application{
		StudentID: req.StudentID,
		Day:       req.Day,
		Category:  req.Category,
	}
	if req.GuestName != "" {
		app.GuestName = &req.GuestName
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("管理员代报名落库失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理员代报名", zap.String("student_id", req.StudentID), zap.String("day", req.Day))
	return &dto.ApplyResponse{
		MemberName: m.Name,
		Day:        req.Day,
		Category:   req.Category,
		GuestName:  req.GuestName,
	}, nil
}

func (s *signupService) ProxyCancel(ctx context.Context, req *dto.ProxyCancelRequest) error {
	if _, err := timerule.LaneFor(timerule.Day(req.Day), timerule.Category(req.Category)); err != nil {
		return err
	}
	return s.deleteApplication(ctx, req.StudentID, req.Day, req.Category, true)
}

// ────────────────────── Roster ──────────────────────

func (s *signupService) Roster(ctx context.Context, day timerule.Day) (*dto.RosterResponse, error) {
	if day != timerule.DayWednesday && day != timerule.DayFriday {
		return nil, timerule.ErrUnknownLane
	}

	apps, err := s.repo.Application.ListByDay(ctx, string(day))
	if err != nil {
		s.logger.Error("查询名单失败", zap.Error(err))
		return nil, err
	}

	title, err := s.timer.TitleTextFor(ctx, day)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RosterEntry, 0, len(apps))
	for _, app := range apps {
		entry := dto.RosterEntry{
			Category:  app.Category,
			StudentID: app.StudentID,
			AppliedAt: app.CreatedAt,
		}
		if app.Member != nil {
			entry.Name = app.Member.Name
		}
		if app.GuestName != nil {
			entry.GuestName = *app.GuestName
		}
		entries = append(entries, entry)
	}

	return &dto.RosterResponse{Day: string(day), Title: title, Entries: entries}, nil
}

func (s *signupService) ClearLaneRoster(ctx context.Context, laneID string) (int64, error) {
	lane, err := timerule.LaneByID(laneID)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.Application.DeleteByLane(ctx, string(lane.Day), string(lane.Category))
	if err != nil {
		s.logger.Error("清空通道名单失败", zap.Error(err), zap.String("lane", laneID))
		return 0, err
	}

	s.logger.Info("通道名单已清空", zap.String("lane", laneID), zap.Int64("deleted", n))
	return n, nil
}

// ── 私有辅助方法 ──

func (s *signupService) ensureNotApplied(ctx context.Context, studentID, day, category string) error {
	exists, err := s.repo.Application.Exists(ctx, studentID, day, category)
	if err != nil {
		s.logger.Error("重复报名检查失败", zap.Error(err))
		return err
	}
	if exists {
		return ErrDuplicateApplication
	}
	return nil
}

func (s *signupService) deleteApplication(ctx context.Context, studentID, day, category string, proxy bool) error {
	n, err := s.repo.Application.DeleteByMember(ctx, studentID, day, category)
	if err != nil {
		s.logger.Error("删除报名记录失败", zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrNoApplication
	}

	s.logger.Info("取消报名",
		zap.String("student_id", studentID),
		zap.String("day", day),
		zap.Bool("proxy", proxy),
	)
	return nil
}
