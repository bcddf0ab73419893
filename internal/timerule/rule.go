package timerule

import "time"

// ── 默认边界规则 ──
//
// 每条通道每个周期有三个绝对时间边界：
//   Open        开放报名
//   ApplyClose  报名截止
//   CancelClose 取消截止
// 不变量：Open < ApplyClose ≤ CancelClose。
//
// 默认偏移（相对锚点）是固定业务规则，按 (活动日, 类别) 逐字给定：
//   开放        周三: 锚点-4天 22:00（上周六） / 周五: 锚点-6天 22:00（上周六）
//   访客截止    周三: 锚点当日 18:00 / 周五: 锚点当日 17:00
//   访客取消    锚点+1天 00:00
//   训练截止    周三: 锚点-3天 22:00（上周日） / 周五: 锚点-5天 22:00（上周日）
//   训练取消    锚点当日 00:00（即前一天 24 时）

// Rule 一个周期内某通道的三个绝对时间边界
type Rule struct {
	Open        time.Time `json:"open"`
	ApplyClose  time.Time `json:"apply_close"`
	CancelClose time.Time `json:"cancel_close"`
}

// Boundary 按种类取出边界值
func (r Rule) Boundary(b Boundary) time.Time {
	switch b {
	case BoundaryOpen:
		return r.Open
	case BoundaryApplyClose:
		return r.ApplyClose
	case BoundaryCancelClose:
		return r.CancelClose
	}
	return time.Time{}
}

// WithBoundary 返回替换了一个边界的副本
func (r Rule) WithBoundary(b Boundary, t time.Time) Rule {
	switch b {
	case BoundaryOpen:
		r.Open = t
	case BoundaryApplyClose:
		r.ApplyClose = t
	case BoundaryCancelClose:
		r.CancelClose = t
	}
	return r
}

// DefaultRule 由锚点计算通道的默认边界规则
func DefaultRule(lane Lane, anchor time.Time) Rule {
	var r Rule

	// 开放时间统一落在上周六 22:00
	openOffset := -4
	if lane.Day == DayFriday {
		openOffset = -6
	}
	r.Open = atHour(anchor.AddDate(0, 0, openOffset), 22)

	if lane.Category == CategoryGuest {
		// 访客：活动当日傍晚截止，次日凌晨 00:00 截止取消
		closeHour := 18
		if lane.Day == DayFriday {
			closeHour = 17
		}
		r.ApplyClose = atHour(anchor, closeHour)
		r.CancelClose = atHour(anchor.AddDate(0, 0, 1), 0)
		return r
	}

	// 例行/课程训练：上周日 22:00 截止报名，活动日 00:00 截止取消
	closeOffset := -3
	if lane.Day == DayFriday {
		closeOffset = -5
	}
	r.ApplyClose = atHour(anchor.AddDate(0, 0, closeOffset), 22)
	r.CancelClose = atHour(anchor, 0)
	return r
}

// atHour 将时刻归整到当日指定小时（分秒清零）
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
