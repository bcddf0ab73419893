package timerule

import (
	"testing"
	"time"
)

func mustLane(t *testing.T, id string) Lane {
	t.Helper()
	l, err := LaneByID(id)
	if err != nil {
		t.Fatalf("通道 %s 应存在: %v", id, err)
	}
	return l
}

// ── 默认规则（锚点 2026-01-21 周三 / 2026-01-23 周五） ──

func TestDefaultRule_WedExercise(t *testing.T) {
	lane := mustLane(t, "WED_EXERCISE")
	anchor := at(2026, 1, 21, 0, 0)

	r := DefaultRule(lane, anchor)

	if want := at(2026, 1, 17, 22, 0); !r.Open.Equal(want) {
		t.Errorf("开放时间应为上周六 22:00 (%v)，实际 %v", want, r.Open)
	}
	if want := at(2026, 1, 18, 22, 0); !r.ApplyClose.Equal(want) {
		t.Errorf("报名截止应为上周日 22:00 (%v)，实际 %v", want, r.ApplyClose)
	}
	if want := at(2026, 1, 21, 0, 0); !r.CancelClose.Equal(want) {
		t.Errorf("取消截止应为活动日 00:00 (%v)，实际 %v", want, r.CancelClose)
	}
}

func TestDefaultRule_WedGuest(t *testing.T) {
	lane := mustLane(t, "WED_GUEST")
	anchor := at(2026, 1, 21, 0, 0)

	r := DefaultRule(lane, anchor)

	if want := at(2026, 1, 17, 22, 0); !r.Open.Equal(want) {
		t.Errorf("开放时间期望 %v，实际 %v", want, r.Open)
	}
	if want := at(2026, 1, 21, 18, 0); !r.ApplyClose.Equal(want) {
		t.Errorf("访客报名截止应为当日 18:00，实际 %v", r.ApplyClose)
	}
	if want := at(2026, 1, 22, 0, 0); !r.CancelClose.Equal(want) {
		t.Errorf("访客取消截止应为次日 00:00，实际 %v", r.CancelClose)
	}
}

func TestDefaultRule_FriExercise(t *testing.T) {
	lane := mustLane(t, "FRI_EXERCISE")
	anchor := at(2026, 1, 23, 0, 0)

	r := DefaultRule(lane, anchor)

	if want := at(2026, 1, 17, 22, 0); !r.Open.Equal(want) {
		t.Errorf("周五通道开放同为上周六 22:00，实际 %v", r.Open)
	}
	if want := at(2026, 1, 18, 22, 0); !r.ApplyClose.Equal(want) {
		t.Errorf("报名截止应为上周日 22:00，实际 %v", r.ApplyClose)
	}
	if want := at(2026, 1, 23, 0, 0); !r.CancelClose.Equal(want) {
		t.Errorf("取消截止应为活动日 00:00，实际 %v", r.CancelClose)
	}
}

func TestDefaultRule_FriGuest(t *testing.T) {
	lane := mustLane(t, "FRI_GUEST")
	anchor := at(2026, 1, 23, 0, 0)

	r := DefaultRule(lane, anchor)

	if want := at(2026, 1, 23, 17, 0); !r.ApplyClose.Equal(want) {
		t.Errorf("周五访客报名截止应为当日 17:00，实际 %v", r.ApplyClose)
	}
	if want := at(2026, 1, 24, 0, 0); !r.CancelClose.Equal(want) {
		t.Errorf("周五访客取消截止应为次日 00:00，实际 %v", r.CancelClose)
	}
}

// 所有通道在任意锚点上的默认规则必须满足不变量
func TestDefaultRule_InvariantHoldsForAllLanes(t *testing.T) {
	anchors := []time.Time{
		at(2026, 1, 21, 0, 0), at(2026, 1, 23, 0, 0),
		at(2026, 3, 4, 0, 0), at(2026, 12, 30, 0, 0),
	}
	for _, lane := range Lanes() {
		for _, anchor := range anchors {
			if err := ValidateRule(DefaultRule(lane, anchor)); err != nil {
				t.Errorf("通道 %s 锚点 %v 的默认规则违反不变量: %v", lane.ID, anchor, err)
			}
		}
	}
}

// ── 校验器 ──

func TestValidateRule_ReportsConflictingPair(t *testing.T) {
	base := DefaultRule(mustLane(t, "WED_EXERCISE"), at(2026, 1, 21, 0, 0))

	// 报名截止晚于取消截止
	bad := base.WithBoundary(BoundaryApplyClose, at(2026, 1, 22, 12, 0))
	err := ValidateRule(bad)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("期望 *ValidationError，实际 %T", err)
	}
	if verr.First != BoundaryApplyClose || verr.Second != BoundaryCancelClose {
		t.Errorf("冲突边界对应为 apply_close/cancel_close，实际 %s/%s", verr.First, verr.Second)
	}

	// 开放时间晚于报名截止
	bad = base.WithBoundary(BoundaryOpen, at(2026, 1, 19, 0, 0))
	verr, ok = ValidateRule(bad).(*ValidationError)
	if !ok {
		t.Fatalf("期望 *ValidationError")
	}
	if verr.First != BoundaryOpen || verr.Second != BoundaryApplyClose {
		t.Errorf("冲突边界对应为 open/apply_close，实际 %s/%s", verr.First, verr.Second)
	}
}

func TestValidateRule_ApplyCloseMayEqualCancelClose(t *testing.T) {
	r := Rule{
		Open:        at(2026, 1, 17, 22, 0),
		ApplyClose:  at(2026, 1, 21, 0, 0),
		CancelClose: at(2026, 1, 21, 0, 0),
	}
	if err := ValidateRule(r); err != nil {
		t.Errorf("ApplyClose == CancelClose 应合法: %v", err)
	}
}

// ── 通道查找 ──

func TestLaneFor_FridayLessonRejected(t *testing.T) {
	if _, err := LaneFor(DayFriday, CategoryLesson); err != ErrNoFridayLesson {
		t.Errorf("周五课程应返回 ErrNoFridayLesson，实际 %v", err)
	}
}

func TestLaneFor_UnknownCombination(t *testing.T) {
	if _, err := LaneFor("MON", CategoryExercise); err != ErrUnknownLane {
		t.Errorf("未知组合应返回 ErrUnknownLane，实际 %v", err)
	}
}
