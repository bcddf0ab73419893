package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smash-signup/internal/dto"
	"smash-signup/internal/model"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/clock"
)

func seedMember(t *testing.T, members *mockMemberRepo, studentID, name, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("生成密码散列失败: %v", err)
	}
	members.members[studentID] = &model.Member{
		StudentID:    studentID,
		Name:         name,
		PasswordHash: string(hash),
	}
}

func newTestSignupService(t *testing.T, now time.Time) (SignupService, *mockMemberRepo, *mockApplicationRepo) {
	t.Helper()
	repo, members, apps, _, _ := newMockRepository()
	logger := zap.NewNop()
	timer := NewTimerService(repo, clock.Fixed{T: now}, logger)
	member := NewMemberService(repo, logger)
	svc := NewSignupService(repo, member, timer, logger)
	return svc, members, apps
}

// ── Apply ──

func TestApply_Success(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw-zhangsan")

	result, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "2024001",
		Password:  "pw-zhangsan",
		Day:       "WED",
		Category:  "exercise",
	})
	if err != nil {
		t.Fatalf("开放窗口内报名失败: %v", err)
	}
	if result.MemberName != "张三" {
		t.Errorf("期望返回社员姓名，实际: %s", result.MemberName)
	}
	if len(apps.apps) != 1 {
		t.Fatalf("期望落库 1 条报名，实际 %d 条", len(apps.apps))
	}
}

func TestApply_WrongPassword(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw-zhangsan")

	_, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "2024001",
		Password:  "wrong",
		Day:       "WED",
		Category:  "exercise",
	})
	if !errors.Is(err, ErrMemberAuthFailed) {
		t.Fatalf("密码错误期望 ErrMemberAuthFailed，实际: %v", err)
	}
	if len(apps.apps) != 0 {
		t.Error("身份校验失败不应落库")
	}
}

func TestApply_UnknownMember(t *testing.T) {
	svc, _, _ := newTestSignupService(t, at(1, 17, 23, 0))

	_, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "9999999",
		Password:  "whatever",
		Day:       "WED",
		Category:  "exercise",
	})
	// 学号不存在与密码错误返回同一错误，不泄露名册信息
	if !errors.Is(err, ErrMemberAuthFailed) {
		t.Fatalf("期望 ErrMemberAuthFailed，实际: %v", err)
	}
}

func TestApply_Duplicate(t *testing.T) {
	svc, members, _ := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	ctx := context.Background()

	req := &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}
	if _, err := svc.Apply(ctx, req); err != nil {
		t.Fatalf("首次报名失败: %v", err)
	}
	_, err := svc.Apply(ctx, req)
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("重复报名期望 ErrDuplicateApplication，实际: %v", err)
	}
}

func TestApply_SameMemberDifferentLanes(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	ctx := context.Background()

	// 同一社员可同时报周三例行与周五例行
	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("周三报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "FRI", Category: "exercise"}); err != nil {
		t.Fatalf("周五报名失败: %v", err)
	}
	if len(apps.apps) != 2 {
		t.Errorf("期望 2 条报名，实际 %d 条", len(apps.apps))
	}
}

func TestApply_FridayLesson(t *testing.T) {
	svc, members, _ := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	_, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "2024001",
		Password:  "pw",
		Day:       "FRI",
		Category:  "lesson",
	})
	if !errors.Is(err, timerule.ErrNoFridayLesson) {
		t.Fatalf("周五课程期望固定拒绝，实际: %v", err)
	}
}

func TestApply_Closed(t *testing.T) {
	// 1/19 12:00 周三例行报名已截止
	svc, members, _ := newTestSignupService(t, at(1, 19, 12, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	_, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "2024001",
		Password:  "pw",
		Day:       "WED",
		Category:  "exercise",
	})
	if !errors.Is(err, ErrSignupClosed) {
		t.Fatalf("截止后报名期望 ErrSignupClosed，实际: %v", err)
	}
}

func TestApply_GuestWithName(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 19, 12, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	// 周三访客报名截止 1/21 18:00，1/19 仍开放
	result, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		StudentID: "2024001",
		Password:  "pw",
		Day:       "WED",
		Category:  "guest",
		GuestName: "李访客",
	})
	if err != nil {
		t.Fatalf("访客报名失败: %v", err)
	}
	if result.GuestName != "李访客" {
		t.Errorf("期望返回来宾姓名，实际: %s", result.GuestName)
	}
	if apps.apps[0].GuestName == nil || *apps.apps[0].GuestName != "李访客" {
		t.Error("来宾姓名未落库")
	}
}

// ── Cancel ──

func TestCancel_Success(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	ctx := context.Background()

	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if err := svc.Cancel(ctx, &dto.CancelRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("取消失败: %v", err)
	}
	if len(apps.apps) != 0 {
		t.Error("取消后报名记录应被删除")
	}
}

func TestCancel_NoApplication(t *testing.T) {
	svc, members, _ := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	err := svc.Cancel(context.Background(), &dto.CancelRequest{
		StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise",
	})
	if !errors.Is(err, ErrNoApplication) {
		t.Fatalf("无报名记录期望 ErrNoApplication，实际: %v", err)
	}
}

func TestCancel_AfterCancelClose(t *testing.T) {
	// 1/21 01:00 取消截止已过
	svc, members, _ := newTestSignupService(t, at(1, 21, 1, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	err := svc.Cancel(context.Background(), &dto.CancelRequest{
		StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise",
	})
	if !errors.Is(err, ErrCancelClosed) {
		t.Fatalf("取消截止后期望 ErrCancelClosed，实际: %v", err)
	}
}

// ── 管理员代操作 ──

func TestProxyApply_SkipsTimeGate(t *testing.T) {
	// 报名已截止的时刻，代报名仍可成功
	svc, members, apps := newTestSignupService(t, at(1, 19, 12, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	result, err := svc.ProxyApply(context.Background(), &dto.ProxyApplyRequest{
		StudentID: "2024001", Day: "WED", Category: "exercise",
	})
	if err != nil {
		t.Fatalf("代报名失败: %v", err)
	}
	if result.MemberName != "张三" {
		t.Errorf("期望返回社员姓名，实际: %s", result.MemberName)
	}
	if len(apps.apps) != 1 {
		t.Error("代报名应落库")
	}
}

func TestProxyApply_UnknownMember(t *testing.T) {
	svc, _, _ := newTestSignupService(t, at(1, 19, 12, 0))

	_, err := svc.ProxyApply(context.Background(), &dto.ProxyApplyRequest{
		StudentID: "9999999", Day: "WED", Category: "exercise",
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("期望 ErrMemberNotFound，实际: %v", err)
	}
}

func TestProxyApply_FridayLesson(t *testing.T) {
	svc, members, _ := newTestSignupService(t, at(1, 19, 12, 0))
	seedMember(t, members, "2024001", "张三", "pw")

	_, err := svc.ProxyApply(context.Background(), &dto.ProxyApplyRequest{
		StudentID: "2024001", Day: "FRI", Category: "lesson",
	})
	if !errors.Is(err, timerule.ErrNoFridayLesson) {
		t.Fatalf("代报名也不得绕过周五课程限制，实际: %v", err)
	}
}

func TestProxyCancel_SkipsTimeGate(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	ctx := context.Background()

	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}

	if err := svc.ProxyCancel(ctx, &dto.ProxyCancelRequest{StudentID: "2024001", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("代取消失败: %v", err)
	}
	if len(apps.apps) != 0 {
		t.Error("代取消后报名记录应被删除")
	}
}

// ── Roster ──

func TestRoster(t *testing.T) {
	svc, members, _ := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	seedMember(t, members, "2024002", "李四", "pw2")
	ctx := context.Background()

	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024002", Password: "pw2", Day: "WED", Category: "guest", GuestName: "王访客"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "FRI", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}

	roster, err := svc.Roster(ctx, timerule.DayWednesday)
	if err != nil {
		t.Fatalf("查询名单失败: %v", err)
	}
	if len(roster.Entries) != 2 {
		t.Fatalf("周三名单期望 2 条，实际 %d 条", len(roster.Entries))
	}
	if roster.Title != "1/21 周三 例行训练 18-21时" {
		t.Errorf("名单标题不符，实际: %s", roster.Title)
	}
	for _, e := range roster.Entries {
		if e.Name == "" {
			t.Error("名单条目应带社员姓名")
		}
	}
}

func TestClearLaneRoster(t *testing.T) {
	svc, members, apps := newTestSignupService(t, at(1, 17, 23, 0))
	seedMember(t, members, "2024001", "张三", "pw")
	seedMember(t, members, "2024002", "李四", "pw2")
	ctx := context.Background()

	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024001", Password: "pw", Day: "WED", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, &dto.ApplyRequest{StudentID: "2024002", Password: "pw2", Day: "FRI", Category: "exercise"}); err != nil {
		t.Fatalf("报名失败: %v", err)
	}

	n, err := svc.ClearLaneRoster(ctx, "WED_EXERCISE")
	if err != nil {
		t.Fatalf("清空通道名单失败: %v", err)
	}
	if n != 1 {
		t.Errorf("期望删除 1 条，实际 %d 条", n)
	}
	// 其他通道不受影响
	if len(apps.apps) != 1 || apps.apps[0].Day != "FRI" {
		t.Error("清空通道不应删除其他通道的报名")
	}
}

func TestClearLaneRoster_UnknownLane(t *testing.T) {
	svc, _, _ := newTestSignupService(t, at(1, 17, 23, 0))

	_, err := svc.ClearLaneRoster(context.Background(), "SAT_EXERCISE")
	if !errors.Is(err, timerule.ErrUnknownLane) {
		t.Fatalf("期望 ErrUnknownLane，实际: %v", err)
	}
}
