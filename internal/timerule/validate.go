package timerule

import (
	"fmt"
	"time"
)

// ── 边界校验 ──

// ValidationError 边界次序校验失败：指明冲突的一对边界及各自取值
type ValidationError struct {
	First       Boundary
	Second      Boundary
	FirstValue  time.Time
	SecondValue time.Time
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("边界次序冲突: %s (%s) 与 %s (%s) 违反先后次序",
		boundaryLabel(e.First), e.FirstValue.Format("2006-01-02 15:04"),
		boundaryLabel(e.Second), e.SecondValue.Format("2006-01-02 15:04"))
}

// ValidateRule 校验 Open < ApplyClose ≤ CancelClose
// 返回 nil 表示合法；否则返回描述冲突边界对的 *ValidationError
func ValidateRule(r Rule) error {
	if !r.Open.Before(r.ApplyClose) {
		return &ValidationError{
			First: BoundaryOpen, Second: BoundaryApplyClose,
			FirstValue: r.Open, SecondValue: r.ApplyClose,
		}
	}
	if r.CancelClose.Before(r.ApplyClose) {
		return &ValidationError{
			First: BoundaryApplyClose, Second: BoundaryCancelClose,
			FirstValue: r.ApplyClose, SecondValue: r.CancelClose,
		}
	}
	if !r.Open.Before(r.CancelClose) {
		return &ValidationError{
			First: BoundaryOpen, Second: BoundaryCancelClose,
			FirstValue: r.Open, SecondValue: r.CancelClose,
		}
	}
	return nil
}

func boundaryLabel(b Boundary) string {
	switch b {
	case BoundaryOpen:
		return "开放时间"
	case BoundaryApplyClose:
		return "报名截止"
	case BoundaryCancelClose:
		return "取消截止"
	}
	return string(b)
}
