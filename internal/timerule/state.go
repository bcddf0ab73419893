package timerule

import "time"

// ── 状态机 ──
//
// 对同一组 (Rule, now) 的分类是纯函数。时间轴上的全序：
//   now < Open                      → AWAITING_OPEN，目标 Open
//   Open ≤ now < ApplyClose         → APPLY_OPEN，目标 ApplyClose
//   ApplyClose ≤ now < CancelClose  → CANCEL_ONLY，目标 CancelClose
//   now ≥ CancelClose               → AWAITING_OPEN，目标 Open+7天
// 最后一档不对外暴露终止态：周期自我滚动，无需外部重置作业。
// 若 Rule 违反不变量（只可能来自外部破坏），分类结果未定义——
// 写入路径的校验是唯一防线。

// Phase 通道所处阶段
type Phase string

const (
	PhaseAwaitingOpen Phase = "AWAITING_OPEN"
	PhaseApplyOpen    Phase = "APPLY_OPEN"
	PhaseCancelOnly   Phase = "CANCEL_ONLY"
)

// LaneState 分类结果：阶段 + 下一次阶段切换的目标时间（倒计时展示用）
type LaneState struct {
	Phase  Phase     `json:"phase"`
	Target time.Time `json:"target"`
}

// Classify 判定通道当前阶段
func Classify(rule Rule, now time.Time) LaneState {
	if now.Before(rule.Open) {
		return LaneState{Phase: PhaseAwaitingOpen, Target: rule.Open}
	}
	if now.Before(rule.ApplyClose) {
		return LaneState{Phase: PhaseApplyOpen, Target: rule.ApplyClose}
	}
	if now.Before(rule.CancelClose) {
		return LaneState{Phase: PhaseCancelOnly, Target: rule.CancelClose}
	}
	// 取消截止之后即等待下一周期开放
	return LaneState{Phase: PhaseAwaitingOpen, Target: rule.Open.AddDate(0, 0, 7)}
}
