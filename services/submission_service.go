package services

import (
	"errors"
	"time"

	"task-review-api/models"

	"gorm.io/gorm"
)

// SubmissionService owns the legal transitions of a submission:
// PENDING -> CLAIMED -> REVIEWED, with CLAIMED -> PENDING on release.
// Claiming is the one contended operation; it is a single conditional UPDATE
// so that concurrent attempts are serialized by the database and exactly one
// wins.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// claimRelease is the patch applied whenever a claim is released, whether by
// an explicit unclaim or by the reviewer-deletion cascade. Both paths must be
// indistinguishable downstream.
func claimRelease() map[string]interface{} {
	return map[string]interface{}{
		"claimed_by_id": nil,
		"assigned_at":   nil,
		"status":        models.SubmissionStatusPending,
	}
}

// Claim takes exclusive ownership of a PENDING submission for the reviewer.
// First claim wins; the losing side of a race gets ErrAlreadyClaimed.
func (s *SubmissionService) Claim(reviewer Identity, submissionID int) (*models.Submission, error) {
	if reviewer.Role != models.RoleReviewer {
		return nil, ErrNotReviewer
	}

	now := time.Now()
	res := s.db.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ? AND claimed_by_id IS NULL",
			submissionID, models.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":        models.SubmissionStatusClaimed,
			"claimed_by_id": reviewer.UserID,
			"assigned_at":   now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.classifyClaimFailure(submissionID)
	}

	var submission models.Submission
	if err := s.db.Preload("Contributor").Preload("ClaimedBy").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// classifyClaimFailure distinguishes a missing submission from a lost race.
func (s *SubmissionService) classifyClaimFailure(submissionID int) error {
	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSubmissionNotFound
	}
	return ErrAlreadyClaimed
}

// Unclaim releases the reviewer's claim, returning the submission to the
// pool. Only the current claimant may release.
func (s *SubmissionService) Unclaim(reviewer Identity, submissionID int) error {
	if reviewer.Role != models.RoleReviewer {
		return ErrNotReviewer
	}

	res := s.db.Model(&models.Submission{}).
		Where("submission_id = ? AND claimed_by_id = ?", submissionID, reviewer.UserID).
		Updates(claimRelease())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrSubmissionNotFound
		}
		return ErrNotClaimant
	}
	return nil
}

// SubmitReview records the claimant's evaluation and moves the submission to
// REVIEWED. The status transition and the review row share one transaction.
func (s *SubmissionService) SubmitReview(reviewer Identity, submissionID int, decision string, comments *string) (*models.Review, error) {
	if reviewer.Role != models.RoleReviewer {
		return nil, ErrNotReviewer
	}
	if decision != models.ReviewDecisionApproved && decision != models.ReviewDecisionRejected {
		return nil, ErrInvalidDecision
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

	res := tx.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ? AND claimed_by_id = ?",
			submissionID, models.SubmissionStatusClaimed, reviewer.UserID).
		Update("status", models.SubmissionStatusReviewed)
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, s.classifyReviewFailure(submissionID, reviewer.UserID)
	}

	review := models.Review{
		SubmissionID: submissionID,
		ReviewerID:   reviewer.UserID,
		Decision:     decision,
		Comments:     comments,
	}
	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// classifyReviewFailure explains why the REVIEWED transition matched no row.
func (s *SubmissionService) classifyReviewFailure(submissionID, reviewerID int) error {
	var submission models.Submission
	err := s.db.Select("submission_id", "status", "claimed_by_id").
		Where("submission_id = ?", submissionID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if submission.Status != models.SubmissionStatusClaimed {
		return ErrNotClaimed
	}
	if !submission.IsClaimedBy(reviewerID) {
		return ErrNotClaimant
	}
	return ErrNotClaimed
}
