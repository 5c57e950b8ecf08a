package services

import (
	"testing"

	"task-review-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewer = Identity{UserID: 9, Email: "rita@example.org", Role: models.RoleReviewer}

func TestClaimRequiresReviewerRole(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	_, err := svc.Claim(Identity{UserID: 5, Role: models.RoleContributor}, 10)
	assert.ErrorIs(t, err, ErrNotReviewer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPendingSubmission(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT \\* FROM `submissions`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"submission_id", "title", "contributor_id", "claimed_by_id", "status"}).
			AddRow(10, "First", 5, 9, models.SubmissionStatusClaimed))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "role"}).
			AddRow(9, "Rita", models.RoleReviewer))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "role"}).
			AddRow(5, "Carol", models.RoleContributor))

	submission, err := svc.Claim(reviewer, 10)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusClaimed, submission.Status)
	assert.True(t, submission.IsClaimedBy(9))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The losing side of a claim race: its conditional update matches no row
// because the winner's claim already landed, and the state is untouched.
func TestClaimLostRaceReturnsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Claim(reviewer, 10)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimMissingSubmission(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Claim(reviewer, 404)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnclaimByClaimant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Unclaim(reviewer, 10)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnclaimByNonClaimant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := svc.Unclaim(reviewer, 10)
	assert.ErrorIs(t, err, ErrNotClaimant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewTransitionsToReviewed(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `reviews`").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectCommit()

	review, err := svc.SubmitReview(reviewer, 10, models.ReviewDecisionApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, 77, review.ReviewID)
	assert.Equal(t, 10, review.SubmissionID)
	assert.Equal(t, 9, review.ReviewerID)
	assert.Equal(t, models.ReviewDecisionApproved, review.Decision)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewRejectsUnknownDecision(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	_, err := svc.SubmitReview(reviewer, 10, "MAYBE", nil)
	assert.ErrorIs(t, err, ErrInvalidDecision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewByNonClaimant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	mock.ExpectQuery("SELECT `submission_id`,`status`,`claimed_by_id` FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "status", "claimed_by_id"}).
			AddRow(10, models.SubmissionStatusClaimed, 99))

	_, err := svc.SubmitReview(reviewer, 10, models.ReviewDecisionApproved, nil)
	assert.ErrorIs(t, err, ErrNotClaimant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewOnPendingSubmission(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubmissionService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	mock.ExpectQuery("SELECT `submission_id`,`status`,`claimed_by_id` FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "status", "claimed_by_id"}).
			AddRow(10, models.SubmissionStatusPending, nil))

	_, err := svc.SubmitReview(reviewer, 10, models.ReviewDecisionRejected, nil)
	assert.ErrorIs(t, err, ErrNotClaimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
