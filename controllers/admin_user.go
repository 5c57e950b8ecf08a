package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"task-review-api/config"
	"task-review-api/models"
	"task-review-api/services"

	"github.com/gin-gonic/gin"
)

type DeleteUserRequest struct {
	UserID int `json:"user_id"`
}

// GetUsers lists all accounts. Admin only.
func GetUsers(c *gin.Context) {
	role := c.Query("role")

	var users []models.User
	query := config.DB.Order("create_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}

// DeleteUser removes an account and cascades through everything it owns:
// stored files and submissions for contributors, claims and reviews for
// reviewers. The summary in the response reflects what actually happened.
func DeleteUser(c *gin.Context) {
	identity := currentIdentity(c)

	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	svc := services.NewUserDeletionService(config.DB, config.FileStore())
	summary, err := svc.DeleteUser(identity, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrAdminProtected):
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete admin users"})
		case errors.Is(err, services.ErrSelfDeletion):
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete your own account"})
		default:
			log.Printf("Delete user error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user account"})
		}
		return
	}

	notifyAccountDeleted(summary)

	c.JSON(http.StatusOK, gin.H{
		"message":          "User account deleted successfully",
		"deletion_summary": summary,
	})
}

// notifyAccountDeleted mails the removed account holder. Fire-and-forget, and
// skipped entirely when SMTP is not configured.
func notifyAccountDeleted(summary *services.DeletionSummary) {
	if !config.MailConfigured() {
		return
	}
	go func() {
		body := fmt.Sprintf(
			"<p>Hello %s,</p><p>Your %s account on the task review platform has been removed by an administrator.</p>",
			summary.UserName, summary.UserRole)
		if err := config.SendMail([]string{summary.UserEmail}, "Your account has been removed", body); err != nil {
			log.Printf("Failed to send deletion notice to %s: %v", summary.UserEmail, err)
		}
	}()
}
