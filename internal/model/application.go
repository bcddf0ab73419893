package model

// Application 报名记录表 — 对应 applications
// (student_id, day, category) 唯一：同一社员同日同类别只能报名一次
type Application struct {
	ApplicationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	StudentID     string  `gorm:"type:varchar(20);not null;uniqueIndex:uniq_member_lane,priority:1" json:"student_id"`
	Day           string  `gorm:"type:varchar(3);not null;uniqueIndex:uniq_member_lane,priority:2"  json:"day"`
	Category      string  `gorm:"type:varchar(10);not null;uniqueIndex:uniq_member_lane,priority:3" json:"category"`
	GuestName     *string `gorm:"type:varchar(100)" json:"guest_name,omitempty"`
	BaseModel

	Member *Member `gorm:"foreignKey:StudentID;references:StudentID" json:"member,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }
