package services

import "errors"

// Sentinel errors returned by the services. Controllers map them to HTTP
// status codes with errors.Is; anything else becomes a generic 500 with the
// detail logged server-side only.
var (
	// ErrUnauthorized means there is no valid acting principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserNotFound means the target user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAdminProtected means the target is an admin account, which is
	// never deletable through the cascade.
	ErrAdminProtected = errors.New("cannot delete admin users")

	// ErrSelfDeletion means the requester targeted their own account.
	ErrSelfDeletion = errors.New("cannot delete your own account")

	// ErrSubmissionNotFound means the submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrAlreadyClaimed means another reviewer holds the claim; the losing
	// side of the claim race sees this.
	ErrAlreadyClaimed = errors.New("submission is already claimed")

	// ErrNotClaimant means the actor does not hold the claim on the
	// submission they tried to release or review.
	ErrNotClaimant = errors.New("submission is not claimed by this reviewer")

	// ErrNotClaimed means the submission is not in the CLAIMED state.
	ErrNotClaimed = errors.New("submission is not claimed")

	// ErrNotReviewer means the actor lacks the REVIEWER role.
	ErrNotReviewer = errors.New("reviewer role required")

	// ErrInvalidDecision means the review decision is not a known value.
	ErrInvalidDecision = errors.New("decision must be APPROVED or REJECTED")
)
