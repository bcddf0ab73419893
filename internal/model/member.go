package model

// Member 社员表 — 对应 members
// 密码由名册导入时以 bcrypt 散列写入，报名/取消时校验
type Member struct {
	StudentID    string `gorm:"type:varchar(20);primaryKey" json:"student_id"`
	Name         string `gorm:"type:varchar(100);not null"  json:"name"`
	PasswordHash string `gorm:"type:varchar(100);not null"  json:"-"`
	BaseModel
}

// TableName 指定表名
func (Member) TableName() string { return "members" }
