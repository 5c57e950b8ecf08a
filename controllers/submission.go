// controllers/submission.go
package controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"task-review-api/config"
	"task-review-api/models"
	"task-review-api/services"
	"task-review-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================== SUBMISSION MANAGEMENT =====================

// CreateSubmission accepts a contributor's multipart upload and creates the
// submission in PENDING state.
func CreateSubmission(c *gin.Context) {
	identity := currentIdentity(c)

	title := utils.SanitizeInput(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	description := utils.SanitizeInput(c.PostForm("description"))

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	// Stored key is opaque; the original filename only survives in the title.
	fileURL := fmt.Sprintf("submissions/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := config.FileStore().Save(fileURL, src); err != nil {
		log.Printf("Failed to store upload %s: %v", fileURL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	submission := models.Submission{
		Title:         title,
		FileURL:       fileURL,
		ContributorID: identity.UserID,
		Status:        models.SubmissionStatusPending,
	}
	if description != "" {
		submission.Description = &description
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		// The row never existed; don't leave the object behind.
		if rmErr := config.FileStore().Remove(fileURL); rmErr != nil {
			log.Printf("Failed to clean up file %s: %v", fileURL, rmErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmissions lists submissions scoped to the caller's role: contributors
// see their own, reviewers see the claimable pool plus their claims, admins
// see everything.
func GetSubmissions(c *gin.Context) {
	identity := currentIdentity(c)
	status := c.Query("status")

	var submissions []models.Submission
	query := config.DB.Preload("Contributor").Preload("ClaimedBy")

	switch identity.Role {
	case models.RoleContributor:
		query = query.Where("contributor_id = ?", identity.UserID)
	case models.RoleReviewer:
		query = query.Where("status = ? OR claimed_by_id = ?",
			models.SubmissionStatusPending, identity.UserID)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("create_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns a specific submission
func GetSubmission(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Contributor").Preload("ClaimedBy").Preload("Reviews").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !canViewSubmission(identity, &submission) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

func canViewSubmission(identity services.Identity, submission *models.Submission) bool {
	switch identity.Role {
	case models.RoleAdmin:
		return true
	case models.RoleContributor:
		return submission.ContributorID == identity.UserID
	case models.RoleReviewer:
		return submission.Status == models.SubmissionStatusPending ||
			submission.IsClaimedBy(identity.UserID)
	}
	return false
}

// DownloadSubmissionFile streams the stored file for a submission.
func DownloadSubmissionFile(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !canViewSubmission(identity, &submission) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	reader, err := config.FileStore().Open(submission.FileURL)
	if err != nil {
		log.Printf("Failed to open file %s: %v", submission.FileURL, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(submission.FileURL)))
	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", reader, nil)
}

// DeleteSubmission removes a single submission and its stored file. Admin
// only; the file removal is best-effort, the row delete is not.
func DeleteSubmission(c *gin.Context) {
	identity := currentIdentity(c)

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.FileURL != "" {
		if err := config.FileStore().Remove(submission.FileURL); err != nil {
			log.Printf("Failed to delete file %s: %v", submission.FileURL, err)
		}
	}

	if err := config.DB.Where("submission_id = ?", submissionID).
		Delete(&models.Submission{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	if err := services.LogActivity(config.DB, services.ActivityRecord{
		Action:      "DELETE_SUBMISSION",
		Description: fmt.Sprintf("Admin deleted submission: %s", submission.Title),
		UserID:      identity.UserID,
		UserName:    identity.Email,
		UserRole:    identity.Role,
		TargetID:    submissionID,
		TargetType:  "submission",
	}); err != nil {
		log.Printf("Failed to log submission deletion %d: %v", submissionID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission deleted successfully",
	})
}
