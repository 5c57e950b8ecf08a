package models

import "time"

// ActivityLog records privileged actions for auditing. Writes to it are
// fire-and-forget: a failed insert never rolls back the action it describes.
type ActivityLog struct {
	LogID       int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	Action      string    `gorm:"column:action" json:"action"`
	Description string    `gorm:"column:description" json:"description"`
	UserID      int       `gorm:"column:user_id" json:"user_id"`
	UserName    string    `gorm:"column:user_name" json:"user_name"`
	UserRole    string    `gorm:"column:user_role" json:"user_role"`
	TargetID    int       `gorm:"column:target_id" json:"target_id"`
	TargetType  string    `gorm:"column:target_type" json:"target_type"`
	Metadata    string    `gorm:"column:metadata;type:json" json:"metadata"`
	CreateAt    time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
