package dto

import "time"

// ApplyRequest 报名请求
type ApplyRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password"   binding:"required"`
	Day       string `json:"day"        binding:"required,oneof=WED FRI"`
	Category  string `json:"category"   binding:"required,oneof=exercise lesson guest"`
	GuestName string `json:"guest_name"` // 仅 guest 类别使用
}

// CancelRequest 取消报名请求
type CancelRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password"   binding:"required"`
	Day       string `json:"day"        binding:"required,oneof=WED FRI"`
	Category  string `json:"category"   binding:"required,oneof=exercise lesson guest"`
}

// ProxyApplyRequest 管理员代报名请求（跳过时间与密码校验）
type ProxyApplyRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Day       string `json:"day"        binding:"required,oneof=WED FRI"`
	Category  string `json:"category"   binding:"required,oneof=exercise lesson guest"`
	GuestName string `json:"guest_name"`
}

// ProxyCancelRequest 管理员代取消请求
type ProxyCancelRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Day       string `json:"day"        binding:"required,oneof=WED FRI"`
	Category  string `json:"category"   binding:"required,oneof=exercise lesson guest"`
}

// ApplyResponse 报名成功响应
type ApplyResponse struct {
	MemberName string `json:"member_name"`
	Day        string `json:"day"`
	Category   string `json:"category"`
	GuestName  string `json:"guest_name,omitempty"`
}

// RosterEntry 名单中的一条报名记录
type RosterEntry struct {
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	StudentID string    `json:"student_id"`
	GuestName string    `json:"guest_name,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
}

// RosterResponse 单日名单响应
type RosterResponse struct {
	Day     string        `json:"day"`
	Title   string        `json:"title"`
	Entries []RosterEntry `json:"entries"`
}
