package services

import (
	"encoding/json"

	"task-review-api/models"

	"gorm.io/gorm"
)

// ActivityRecord is one privileged action headed for the audit trail.
type ActivityRecord struct {
	Action      string
	Description string
	UserID      int
	UserName    string
	UserRole    string
	TargetID    int
	TargetType  string
	Metadata    interface{}
}

// LogActivity writes one audit row. Callers treat failures as
// fire-and-forget: log the error and move on.
func LogActivity(db *gorm.DB, rec ActivityRecord) error {
	metadata := ""
	if rec.Metadata != nil {
		raw, err := json.Marshal(rec.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	entry := models.ActivityLog{
		Action:      rec.Action,
		Description: rec.Description,
		UserID:      rec.UserID,
		UserName:    rec.UserName,
		UserRole:    rec.UserRole,
		TargetID:    rec.TargetID,
		TargetType:  rec.TargetType,
		Metadata:    metadata,
	}

	return db.Create(&entry).Error
}
