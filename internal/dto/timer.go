package dto

import "time"

// LaneStateResponse 单条通道的阶段与倒计时目标
type LaneStateResponse struct {
	LaneID string    `json:"lane_id"`
	Name   string    `json:"name"`
	Phase  string    `json:"phase"`
	Target time.Time `json:"target"`
}

// SystemInfoResponse 运营信息（展示用计数 + 全部通道状态）
type SystemInfoResponse struct {
	Year     int                          `json:"year"`
	Semester string                       `json:"semester"`
	Week     int                          `json:"week"`
	Titles   map[string]string            `json:"titles"`
	Lanes    map[string]LaneStateResponse `json:"lanes"`
}

// SetOverrideRequest 管理员写入边界覆盖
type SetOverrideRequest struct {
	LaneID   string    `json:"lane_id"  binding:"required"`
	Boundary string    `json:"boundary" binding:"required,oneof=open apply_close cancel_close"`
	At       time.Time `json:"at"       binding:"required"`
}

// ResetSemesterRequest 开学重置（周次归 1，清空全部覆盖）
type ResetSemesterRequest struct {
	Year     int    `json:"year"     binding:"required"`
	Semester string `json:"semester" binding:"required"`
}

// WeekCounterResponse 周次变更结果
type WeekCounterResponse struct {
	Year     int    `json:"year"`
	Semester string `json:"semester"`
	Week     int    `json:"week"`
}
