package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"task-review-api/config"
	"task-review-api/services"
	"task-review-api/utils"

	"github.com/gin-gonic/gin"
)

// ClaimSubmission gives the calling reviewer exclusive ownership of a
// PENDING submission. A lost race returns 409.
func ClaimSubmission(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	svc := services.NewSubmissionService(config.DB)
	submission, err := svc.Claim(identity, submissionID)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission claimed successfully",
		"submission": submission,
	})
}

// UnclaimSubmission releases the caller's claim, returning the submission to
// the pool.
func UnclaimSubmission(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	svc := services.NewSubmissionService(config.DB)
	if err := svc.Unclaim(identity, submissionID); err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission returned to the pool",
	})
}

// SubmitReview records the claimant's decision and completes the review cycle.
func SubmitReview(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	decision := strings.ToUpper(strings.TrimSpace(req.Decision))
	var comments *string
	if trimmed := utils.SanitizeInput(req.Comments); trimmed != "" {
		comments = &trimmed
	}

	svc := services.NewSubmissionService(config.DB)
	review, err := svc.SubmitReview(identity, submissionID, decision, comments)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// respondClaimError maps state machine errors onto status codes.
func respondClaimError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyClaimed), errors.Is(err, services.ErrNotClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotClaimant), errors.Is(err, services.ErrNotReviewer):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}
