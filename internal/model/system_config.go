package model

// SystemConfig 系统配置表 — 对应 system_config（单行强类型）
// 学期/周次仅为展示用计数，不参与边界计算
type SystemConfig struct {
	Singleton bool   `gorm:"primaryKey;default:true"                 json:"-"`
	Year      int    `gorm:"not null;default:2026"                   json:"year"`
	Semester  string `gorm:"type:varchar(20);not null;default:'冬季'"  json:"semester"`
	Week      int    `gorm:"not null;default:1"                      json:"week"`
	BaseModel
}

// TableName 指定表名
func (SystemConfig) TableName() string { return "system_config" }
