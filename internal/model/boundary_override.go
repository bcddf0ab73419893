package model

import "time"

// BoundaryOverride 边界覆盖表 — 对应 boundary_overrides
// 管理员对单条通道单个边界的临时替换值，至多 5 通道 × 3 边界 = 15 行
type BoundaryOverride struct {
	LaneID   string    `gorm:"type:varchar(20);primaryKey" json:"lane_id"`
	Boundary string    `gorm:"type:varchar(20);primaryKey" json:"boundary"`
	At       time.Time `gorm:"not null"                    json:"at"`
	BaseModel
}

// TableName 指定表名
func (BoundaryOverride) TableName() string { return "boundary_overrides" }
