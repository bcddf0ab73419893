package timerule

import "errors"

// ── 泳道（报名通道）静态定义 ──

// Day 活动日
type Day string

const (
	DayWednesday Day = "WED"
	DayFriday    Day = "FRI"
)

// Category 报名类别
type Category string

const (
	CategoryExercise Category = "exercise"
	CategoryLesson   Category = "lesson"
	CategoryGuest    Category = "guest"
)

// Boundary 周期边界种类
type Boundary string

const (
	BoundaryOpen        Boundary = "open"
	BoundaryApplyClose  Boundary = "apply_close"
	BoundaryCancelClose Boundary = "cancel_close"
)

var (
	// ErrUnknownLane 请求的 (活动日, 类别) 组合不存在
	ErrUnknownLane = errors.New("不存在的报名通道")
	// ErrNoFridayLesson 周五没有课程训练，该组合被规则永久禁止
	ErrNoFridayLesson = errors.New("周五没有课程训练")
	// ErrUnknownBoundary 边界种类无效
	ErrUnknownBoundary = errors.New("无效的边界种类")
)

// Lane 报名通道静态描述符（进程启动即固定，运行期不增删）
type Lane struct {
	ID       string
	Day      Day
	Category Category
	Name     string
}

// 五条固定通道。顺序即对外展示顺序。
var lanes = []Lane{
	{ID: "WED_EXERCISE", Day: DayWednesday, Category: CategoryExercise, Name: "周三例行训练"},
	{ID: "WED_LESSON", Day: DayWednesday, Category: CategoryLesson, Name: "周三课程训练"},
	{ID: "WED_GUEST", Day: DayWednesday, Category: CategoryGuest, Name: "周三访客"},
	{ID: "FRI_EXERCISE", Day: DayFriday, Category: CategoryExercise, Name: "周五例行训练"},
	{ID: "FRI_GUEST", Day: DayFriday, Category: CategoryGuest, Name: "周五访客"},
}

// Lanes 返回全部通道的副本
func Lanes() []Lane {
	out := make([]Lane, len(lanes))
	copy(out, lanes)
	return out
}

// LaneByID 按通道 ID 查找
func LaneByID(id string) (Lane, error) {
	for _, l := range lanes {
		if l.ID == id {
			return l, nil
		}
	}
	return Lane{}, ErrUnknownLane
}

// LaneFor 按 (活动日, 类别) 查找通道
// 周五课程为规则层面的非法组合，返回专用错误以便给出固定提示
func LaneFor(day Day, category Category) (Lane, error) {
	if day == DayFriday && category == CategoryLesson {
		return Lane{}, ErrNoFridayLesson
	}
	for _, l := range lanes {
		if l.Day == day && l.Category == category {
			return l, nil
		}
	}
	return Lane{}, ErrUnknownLane
}

// ParseBoundary 解析边界种类
func ParseBoundary(s string) (Boundary, error) {
	switch Boundary(s) {
	case BoundaryOpen, BoundaryApplyClose, BoundaryCancelClose:
		return Boundary(s), nil
	}
	return "", ErrUnknownBoundary
}
