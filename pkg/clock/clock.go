package clock

import "time"

// Clock 时间源抽象
// 周期引擎的一切判定都以注入的 Clock 为准，便于测试中冻结时间
type Clock interface {
	// Now 返回当前时间（已换算到业务时区）
	Now() time.Time
	// Location 返回业务时区
	Location() *time.Location
}

// SystemClock 系统时钟，显式绑定业务时区
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock 创建绑定指定时区的系统时钟
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *SystemClock) Location() *time.Location { return c.loc }

// Fixed 固定时钟，仅用于测试与回放
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time           { return f.T }
func (f Fixed) Location() *time.Location { return f.T.Location() }
