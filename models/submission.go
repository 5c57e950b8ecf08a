package models

import "time"

// Submission status values. PENDING is the initial state; a submission
// returns to PENDING whenever its claim is released, whether by an explicit
// unclaim or by the reviewer-deletion cascade.
const (
	SubmissionStatusPending  = "PENDING"
	SubmissionStatusClaimed  = "CLAIMED"
	SubmissionStatusReviewed = "REVIEWED"
)

type Submission struct {
	SubmissionID  int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	Title         string     `gorm:"column:title" json:"title"`
	Description   *string    `gorm:"column:description" json:"description,omitempty"`
	FileURL       string     `gorm:"column:file_url" json:"file_url"`
	ContributorID int        `gorm:"column:contributor_id" json:"contributor_id"`
	ClaimedByID   *int       `gorm:"column:claimed_by_id" json:"claimed_by_id"`
	AssignedAt    *time.Time `gorm:"column:assigned_at" json:"assigned_at"`
	Status        string     `gorm:"column:status;default:PENDING" json:"status"`
	CreateAt      time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	// Relations
	Contributor *User `gorm:"foreignKey:ContributorID" json:"contributor,omitempty"`
	ClaimedBy   *User `gorm:"foreignKey:ClaimedByID" json:"claimed_by,omitempty"`
	// Reviews ride on the submission row: the database cascade removes them
	// when the submission is deleted.
	Reviews []Review `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// IsClaimedBy reports whether userID currently holds the claim.
func (s *Submission) IsClaimedBy(userID int) bool {
	return s.ClaimedByID != nil && *s.ClaimedByID == userID
}
