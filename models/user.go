package models

import (
	"time"
)

// Role values. A user holds exactly one role and it never changes after signup.
const (
	RoleContributor = "CONTRIBUTOR"
	RoleReviewer    = "REVIEWER"
	RoleAdmin       = "ADMIN"
)

type User struct {
	UserID   int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name     string     `gorm:"column:name" json:"name"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	// Relations. Submissions is meaningful only for contributors;
	// Reviews and ClaimedSubmissions only for reviewers.
	Submissions        []Submission `gorm:"foreignKey:ContributorID" json:"submissions,omitempty"`
	Reviews            []Review     `gorm:"foreignKey:ReviewerID" json:"reviews,omitempty"`
	ClaimedSubmissions []Submission `gorm:"foreignKey:ClaimedByID" json:"claimed_submissions,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleContributor, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}
