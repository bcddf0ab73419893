package timerule

import "time"

// ── 周期计算 ──
//
// 一个报名周期覆盖一周：周六 00:00 视为新周期的起点。
// 给定当前时刻，先找到"本周期"的周一，再加固定偏移得到活动日锚点：
//   - 周三活动：周一 + 2 天
//   - 周五活动：周一 + 4 天
// 周六/周日的任何时刻都按"下一周期"处理（日粒度翻转，开放边界 22:00
// 晚于锚点翻转属于既定行为，调用方不得依赖周六 00:00~22:00 的连续性）。

// AnchorDate 计算指定活动日在当前周期内的日历锚点（当日 00:00）
func AnchorDate(day Day, now time.Time) time.Time {
	loc := now.Location()

	// 周一定位：周日按上一个周一计（dow 周一=1 … 周日=7）
	dow := int(now.Weekday())
	if dow == 0 {
		dow = 7
	}
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(dow - 1))

	// 周六/周日已进入下一周期
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		monday = monday.AddDate(0, 0, 7)
	}

	offset := 2 // 周三
	if day == DayFriday {
		offset = 4
	}
	return monday.AddDate(0, 0, offset)
}
