package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"task-review-api/models"
	"task-review-api/storage"

	"gorm.io/gorm"
)

// Identity is the acting principal, as established by the auth middleware.
type Identity struct {
	UserID int
	Email  string
	Role   string
}

// DeletionSummary is the canonical record of what a cascade removed or
// reassigned. Every count comes from actual affected rows, never estimated.
type DeletionSummary struct {
	UserName              string `json:"user_name"`
	UserEmail             string `json:"user_email"`
	UserRole              string `json:"user_role"`
	SubmissionsDeleted    int64  `json:"submissions_deleted"`
	FilesDeleted          int64  `json:"files_deleted"`
	ReviewsDeleted        int64  `json:"reviews_deleted"`
	AssignmentsUnassigned int64  `json:"assignments_unassigned"`
}

// UserDeletionService unwinds all state owned by a user account and then
// removes the account itself.
//
// Ordering matters: for reviewers, claimed submissions are released and
// authored reviews deleted before the user row goes away, so no row is ever
// left referencing a deleted reviewer. For contributors, stored files are
// removed best-effort first, then the submissions in one bulk delete (their
// reviews follow through the database cascade).
type UserDeletionService struct {
	db    *gorm.DB
	store storage.Store
}

func NewUserDeletionService(db *gorm.DB, store storage.Store) *UserDeletionService {
	return &UserDeletionService{db: db, store: store}
}

// userSnapshot is the target account plus whichever dependent collections its
// role makes meaningful. Exactly one of contributor/reviewer is set for
// non-admin accounts; keeping them as separate payloads rules out states like
// a contributor holding claims.
type userSnapshot struct {
	user        models.User
	contributor *contributorDependents
	reviewer    *reviewerDependents
}

type contributorDependents struct {
	submissions []models.Submission // submission_id, title, file_url
}

type reviewerDependents struct {
	reviews []models.Review     // review_id
	claimed []models.Submission // submission_id, title
}

// loadDependents reads the role-specific dependent collections before any
// mutation begins, so the counts reported afterward stay accurate even though
// the cascade rewrites the same tables.
func (s *UserDeletionService) loadDependents(tx *gorm.DB, snap *userSnapshot) error {
	targetID := snap.user.UserID

	switch snap.user.Role {
	case models.RoleContributor:
		deps := &contributorDependents{}
		if err := tx.Select("submission_id", "contributor_id", "title", "file_url").
			Where("contributor_id = ?", targetID).
			Find(&deps.submissions).Error; err != nil {
			return err
		}
		snap.contributor = deps
	case models.RoleReviewer:
		deps := &reviewerDependents{}
		if err := tx.Select("review_id", "reviewer_id").
			Where("reviewer_id = ?", targetID).
			Find(&deps.reviews).Error; err != nil {
			return err
		}
		if err := tx.Select("submission_id", "claimed_by_id", "title").
			Where("claimed_by_id = ?", targetID).
			Find(&deps.claimed).Error; err != nil {
			return err
		}
		snap.reviewer = deps
	}

	return nil
}

// DeleteUser removes the target account and everything reachable under its
// role. Authorization and validation run before any mutation; file-store
// failures are logged and swallowed; the database steps share one transaction.
func (s *UserDeletionService) DeleteUser(requester Identity, targetID int) (*DeletionSummary, error) {
	if requester.Role != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	snap := &userSnapshot{}
	if err := s.db.Where("user_id = ?", targetID).First(&snap.user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if snap.user.Role == models.RoleAdmin {
		return nil, ErrAdminProtected
	}
	if targetID == requester.UserID {
		return nil, ErrSelfDeletion
	}

	if err := s.loadDependents(s.db, snap); err != nil {
		return nil, err
	}

	summary := &DeletionSummary{
		UserName:  snap.user.Name,
		UserEmail: snap.user.Email,
		UserRole:  snap.user.Role,
	}

	// Stored files cannot join a database transaction; remove them first,
	// best-effort. A dead file store must not block account deletion.
	if snap.contributor != nil {
		for _, submission := range snap.contributor.submissions {
			if submission.FileURL == "" {
				continue
			}
			if err := s.store.Remove(submission.FileURL); err != nil {
				log.Printf("Failed to delete file %s: %v", submission.FileURL, err)
				continue
			}
			summary.FilesDeleted++
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if snap.contributor != nil {
		// Bulk delete of the owned submissions; their reviews go with
		// them through the reviews.submission_id cascade.
		res := tx.Where("contributor_id = ?", targetID).Delete(&models.Submission{})
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		summary.SubmissionsDeleted = res.RowsAffected
	}

	if snap.reviewer != nil {
		// Release the claims before touching reviews or the user row, so
		// in-flight work returns to the pool instead of vanishing.
		// Same patch as an explicit unclaim, so the two release paths
		// stay indistinguishable downstream.
		res := tx.Model(&models.Submission{}).
			Where("claimed_by_id = ?", targetID).
			Updates(claimRelease())
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		summary.AssignmentsUnassigned = res.RowsAffected

		res = tx.Where("reviewer_id = ?", targetID).Delete(&models.Review{})
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		summary.ReviewsDeleted = res.RowsAffected
	}

	if err := tx.Where("user_id = ?", targetID).Delete(&models.User{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Audit failure does not undo the deletion.
	if err := LogActivity(s.db, ActivityRecord{
		Action: "DELETE_USER",
		Description: fmt.Sprintf("Admin deleted %s account: %s (%s)",
			strings.ToLower(snap.user.Role), snap.user.Name, snap.user.Email),
		UserID:     requester.UserID,
		UserName:   requester.Email,
		UserRole:   requester.Role,
		TargetID:   targetID,
		TargetType: "user",
		Metadata:   summary,
	}); err != nil {
		log.Printf("Failed to log user deletion for user %d: %v", targetID, err)
	}

	return summary, nil
}
