package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task-review-api/config"
	"task-review-api/models"
	"task-review-api/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDeleteRouter wires the delete endpoint with a stub identity in place of
// the auth middleware and a sqlmock-backed database behind config.DB.
func newDeleteRouter(t *testing.T, identity services.Identity) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	config.DB = db

	t.Setenv("UPLOAD_PATH", t.TempDir())
	config.InitStorage()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", identity.UserID)
		c.Set("email", identity.Email)
		c.Set("role", identity.Role)
	})
	router.DELETE("/api/v1/admin/users", DeleteUser)
	return router, mock
}

func doDelete(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

var adminIdentity = services.Identity{UserID: 1, Email: "admin@example.org", Role: models.RoleAdmin}

func TestDeleteUserEndpointMissingUserID(t *testing.T) {
	router, _ := newDeleteRouter(t, adminIdentity)

	recorder := doDelete(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User ID is required")
}

func TestDeleteUserEndpointNonAdminPrincipal(t *testing.T) {
	router, _ := newDeleteRouter(t, services.Identity{UserID: 2, Email: "rita@example.org", Role: models.RoleReviewer})

	recorder := doDelete(router, `{"user_id": 5}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestDeleteUserEndpointTargetNotFound(t *testing.T) {
	router, mock := newDeleteRouter(t, adminIdentity)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role"}))

	recorder := doDelete(router, `{"user_id": 42}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User not found")
}

func TestDeleteUserEndpointAdminTarget(t *testing.T) {
	router, mock := newDeleteRouter(t, adminIdentity)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role"}).
			AddRow(7, "Other Admin", "other@example.org", models.RoleAdmin))

	recorder := doDelete(router, `{"user_id": 7}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cannot delete admin users")
}

func TestDeleteUserEndpointSelfTarget(t *testing.T) {
	router, mock := newDeleteRouter(t, adminIdentity)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role"}).
			AddRow(1, "Admin", "admin@example.org", models.RoleContributor))

	recorder := doDelete(router, `{"user_id": 1}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cannot delete your own account")
}

func TestDeleteUserEndpointReviewerSuccess(t *testing.T) {
	router, mock := newDeleteRouter(t, adminIdentity)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "role"}).
			AddRow(9, "Rita", "rita@example.org", models.RoleReviewer))
	mock.ExpectQuery("SELECT `review_id`,`reviewer_id` FROM `reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "reviewer_id"}).AddRow(100, 9))
	mock.ExpectQuery("SELECT `submission_id`,`claimed_by_id`,`title` FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "claimed_by_id", "title"}).
			AddRow(20, 9, "Claimed"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `reviews`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorder := doDelete(router, `{"user_id": 9}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Message string                   `json:"message"`
		Summary services.DeletionSummary `json:"deletion_summary"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "User account deleted successfully", body.Message)
	assert.Equal(t, "Rita", body.Summary.UserName)
	assert.Equal(t, int64(1), body.Summary.AssignmentsUnassigned)
	assert.Equal(t, int64(1), body.Summary.ReviewsDeleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
