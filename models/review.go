package models

import "time"

// Review decision values.
const (
	ReviewDecisionApproved = "APPROVED"
	ReviewDecisionRejected = "REJECTED"
)

// Review is a reviewer's evaluation of a single submission.
type Review struct {
	ReviewID     int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	ReviewerID   int       `gorm:"column:reviewer_id" json:"reviewer_id"`
	Decision     string    `gorm:"column:decision" json:"decision"`
	Comments     *string   `gorm:"column:comments" json:"comments"`
	ReviewedAt   time.Time `gorm:"column:reviewed_at;autoCreateTime" json:"reviewed_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
