package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smash-signup/internal/dto"
	"smash-signup/internal/model"
	"smash-signup/internal/repository"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/clock"
)

// ── 时间规则模块业务错误 ──

var (
	ErrSignupNotYetOpen = errors.New("还未到报名时间")
	ErrSignupClosed     = errors.New("报名已截止")
	ErrCancelClosed     = errors.New("取消时间已过")
)

// ── TimerService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 每次查询都从当前时刻重新推导周期锚点与默认边界，再叠加覆盖值，
//     周期到点自动滚动到下一周，不存在需要外部作业推进的终止态。
//   - 覆盖写入走 读取-校验-写入 的互斥临界区，持久化也在临界区内完成，
//     防止两次并发写各自对过期快照校验通过、合并后却违反次序不变量。
//   - 覆盖/周次存储读取失败按"全默认、无覆盖"降级并记日志：
//     空存储是合法的首次运行状态，引擎不因此拒绝服务。
// ─────────────────────────────────────────────────────────────

// TimerService 时间规则引擎业务接口
type TimerService interface {
	// GetLaneState 单条通道当前阶段
	GetLaneState(ctx context.Context, laneID string) (*dto.LaneStateResponse, error)
	// GetAllLaneStates 五条通道的阶段快照
	GetAllLaneStates(ctx context.Context) (map[string]dto.LaneStateResponse, error)
	// CanApply 报名时间闸门：仅 APPLY_OPEN 阶段放行
	CanApply(ctx context.Context, day timerule.Day, category timerule.Category) error
	// CanCancel 取消时间闸门：取消截止前（按未滚动的原始边界判断）放行
	CanCancel(ctx context.Context, day timerule.Day, category timerule.Category) error
	// TitleTextFor 名单标题文本，如 "1/21 周三 例行训练 18-21时"
	TitleTextFor(ctx context.Context, day timerule.Day) (string, error)
	// SetOverride 写入单个边界覆盖（校验失败返回 *timerule.ValidationError，存储不变）
	SetOverride(ctx context.Context, laneID string, boundary timerule.Boundary, at time.Time) error
	// ClearAllOverrides 清空全部覆盖，回到默认规则
	ClearAllOverrides(ctx context.Context) error
	// GetSystemInfo 运营信息（周次计数 + 通道状态 + 标题）
	GetSystemInfo(ctx context.Context) (*dto.SystemInfoResponse, error)
	// ResetSemester 开学重置：周次归 1，清空覆盖
	ResetSemester(ctx context.Context, year int, semester string) (*dto.WeekCounterResponse, error)
	// IncrementWeek 周次 +1（每周翻转作业调用），同时清空覆盖
	IncrementWeek(ctx context.Context) (*dto.WeekCounterResponse, error)
}

type timerService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger

	mu sync.Mutex // 串行化覆盖与周次的 读取-校验-写入
}

// NewTimerService 创建 TimerService 实例
func NewTimerService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) TimerService {
	return &timerService{repo: repo, clk: clk, logger: logger}
}

// ────────────────────── 状态查询 ──────────────────────

func (s *timerService) GetLaneState(ctx context.Context, laneID string) (*dto.LaneStateResponse, error) {
	lane, err := timerule.LaneByID(laneID)
	if err != nil {
		return nil, err
	}
	state := timerule.Classify(s.effectiveRule(ctx, lane), s.clk.Now())
	resp := toLaneStateResponse(lane, state)
	return &resp, nil
}

func (s *timerService) GetAllLaneStates(ctx context.Context) (map[string]dto.LaneStateResponse, error) {
	now := s.clk.Now()
	overrides := s.loadOverrides(ctx)

	result := make(map[string]dto.LaneStateResponse, 5)
	for _, lane := range timerule.Lanes() {
		rule := s.mergedRule(lane, now, overrides)
		result[lane.ID] = toLaneStateResponse(lane, timerule.Classify(rule, now))
	}
	return result, nil
}

// ────────────────────── 时间闸门 ──────────────────────

func (s *timerService) CanApply(ctx context.Context, day timerule.Day, category timerule.Category) error {
	lane, err := timerule.LaneFor(day, category)
	if err != nil {
		return err
	}

	now := s.clk.Now()
	state := timerule.Classify(s.effectiveRule(ctx, lane), now)

	switch state.Phase {
	case timerule.PhaseApplyOpen:
		return nil
	case timerule.PhaseAwaitingOpen:
		// 含取消截止后的滚动档：一律提示下一次开放时间，没有"已结束"
		return fmt.Errorf("%w（开放时间: %s）", ErrSignupNotYetOpen, formatInstant(state.Target))
	default:
		return ErrSignupClosed
	}
}

func (s *timerService) CanCancel(ctx context.Context, day timerule.Day, category timerule.Category) error {
	lane, err := timerule.LaneFor(day, category)
	if err != nil {
		return err
	}

	// 取消判定看本周期的原始取消截止，不看滚动后的分类结果
	rule := s.effectiveRule(ctx, lane)
	if !s.clk.Now().Before(rule.CancelClose) {
		return ErrCancelClosed
	}
	return nil
}

// ────────────────────── 标题文本 ──────────────────────

func (s *timerService) TitleTextFor(ctx context.Context, day timerule.Day) (string, error) {
	if day != timerule.DayWednesday && day != timerule.DayFriday {
		return "", timerule.ErrUnknownLane
	}
	anchor := timerule.AnchorDate(day, s.clk.Now())

	dayName, suffix := "周三", "例行训练 18-21时"
	if day == timerule.DayFriday {
		dayName, suffix = "周五", "加练 15-17时"
	}
	return fmt.Sprintf("%d/%d %s %s", int(anchor.Month()), anchor.Day(), dayName, suffix), nil
}

// ────────────────────── 覆盖写入 ──────────────────────

func (s *timerService) SetOverride(ctx context.Context, laneID string, boundary timerule.Boundary, at time.Time) error {
	lane, err := timerule.LaneByID(laneID)
	if err != nil {
		return err
	}
	if _, err := timerule.ParseBoundary(string(boundary)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 临界区内取最新生效规则，替换候选边界后整体校验
	candidate := s.effectiveRule(ctx, lane).WithBoundary(boundary, at.In(s.clk.Location()))
	if err := timerule.ValidateRule(candidate); err != nil {
		return err
	}

	ov := &model.BoundaryOverride{LaneID: lane.ID, Boundary: string(boundary), At: at}
	if err := s.repo.Override.Upsert(ctx, ov); err != nil {
		s.logger.Error("写入边界覆盖失败", zap.Error(err), zap.String("lane", lane.ID))
		return err
	}

	s.logger.Info("边界覆盖已写入",
		zap.String("lane", lane.ID),
		zap.String("boundary", string(boundary)),
		zap.Time("at", at),
	)
	return nil
}

func (s *timerService) ClearAllOverrides(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Override.DeleteAll(ctx); err != nil {
		s.logger.Error("清空边界覆盖失败", zap.Error(err))
		return err
	}
	s.logger.Info("全部边界覆盖已清空，恢复默认规则")
	return nil
}

// ────────────────────── 周次计数 ──────────────────────

func (s *timerService) GetSystemInfo(ctx context.Context) (*dto.SystemInfoResponse, error) {
	cfg := s.loadSystemConfig(ctx)

	lanes, err := s.GetAllLaneStates(ctx)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, 2)
	for _, day := range []timerule.Day{timerule.DayWednesday, timerule.DayFriday} {
		title, _ := s.TitleTextFor(ctx, day)
		titles[string(day)] = title
	}

	return &dto.SystemInfoResponse{
		Year:     cfg.Year,
		Semester: cfg.Semester,
		Week:     cfg.Week,
		Titles:   titles,
		Lanes:    lanes,
	}, nil
}

func (s *timerService) ResetSemester(ctx context.Context, year int, semester string) (*dto.WeekCounterResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.loadSystemConfig(ctx)
	cfg.Year = year
	cfg.Semester = semester
	cfg.Week = 1

	if err := s.repo.Override.DeleteAll(ctx); err != nil {
		s.logger.Error("开学重置时清空覆盖失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.SystemConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("保存周次计数失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("开学重置完成", zap.Int("year", year), zap.String("semester", semester))
	return &dto.WeekCounterResponse{Year: cfg.Year, Semester: cfg.Semester, Week: cfg.Week}, nil
}

func (s *timerService) IncrementWeek(ctx context.Context) (*dto.WeekCounterResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.loadSystemConfig(ctx)
	cfg.Week++

	if err := s.repo.Override.DeleteAll(ctx); err != nil {
		s.logger.Error("周翻转时清空覆盖失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.SystemConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("保存周次计数失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("周次已推进", zap.Int("week", cfg.Week))
	return &dto.WeekCounterResponse{Year: cfg.Year, Semester: cfg.Semester, Week: cfg.Week}, nil
}

// ── 私有辅助方法 ──

// effectiveRule 当前周期的生效规则：默认规则 + 覆盖值
func (s *timerService) effectiveRule(ctx context.Context, lane timerule.Lane) timerule.Rule {
	return s.mergedRule(lane, s.clk.Now(), s.loadOverrides(ctx))
}

func (s *timerService) mergedRule(lane timerule.Lane, now time.Time, overrides []model.BoundaryOverride) timerule.Rule {
	rule := timerule.DefaultRule(lane, timerule.AnchorDate(lane.Day, now))
	for _, ov := range overrides {
		if ov.LaneID != lane.ID {
			continue
		}
		if b, err := timerule.ParseBoundary(ov.Boundary); err == nil {
			rule = rule.WithBoundary(b, ov.At.In(now.Location()))
		}
	}
	return rule
}

// loadOverrides 读取覆盖快照；读取失败按无覆盖降级
func (s *timerService) loadOverrides(ctx context.Context) []model.BoundaryOverride {
	ovs, err := s.repo.Override.List(ctx)
	if err != nil {
		s.logger.Warn("读取边界覆盖失败，按默认规则执行", zap.Error(err))
		return nil
	}
	return ovs
}

// loadSystemConfig 读取周次计数；不存在或读取失败时退回默认值（合法的首次运行）
func (s *timerService) loadSystemConfig(ctx context.Context) *model.SystemConfig {
	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("读取周次计数失败，使用默认值", zap.Error(err))
		}
		return &model.SystemConfig{Singleton: true, Year: 2026, Semester: "冬季", Week: 1}
	}
	return cfg
}

// ── 响应转换器 ──

func toLaneStateResponse(lane timerule.Lane, state timerule.LaneState) dto.LaneStateResponse {
	return dto.LaneStateResponse{
		LaneID: lane.ID,
		Name:   lane.Name,
		Phase:  string(state.Phase),
		Target: state.Target,
	}
}

// formatInstant 错误提示用的短时间格式，如 "1/17(周六) 22时"
func formatInstant(t time.Time) string {
	weekdays := []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	return fmt.Sprintf("%d/%d(%s) %d时", int(t.Month()), t.Day(), weekdays[int(t.Weekday())], t.Hour())
}
