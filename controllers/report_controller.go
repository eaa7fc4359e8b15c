package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/store"
	"github.com/our-area/api-go/utils"
)

type ReportController struct {
	Reports *store.Reports
	Posts   *store.Posts
	Users   *store.Users
}

func NewReportController(reports *store.Reports, posts *store.Posts, users *store.Users) *ReportController {
	return &ReportController{Reports: reports, Posts: posts, Users: users}
}

type CreateReportRequest struct {
	PostID      *string `json:"post_id"`
	UserID      *string `json:"user_id"`
	Reason      string  `json:"reason" binding:"required,oneof=spam inappropriate harassment fake other"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CreateReport files a report against exactly one target, a post or a
// user. Naming both or neither is a validation failure.
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input CreateReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (input.PostID == nil) == (input.UserID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of post_id or user_id must be provided"})
		return
	}

	if input.PostID != nil {
		exists, err := rc.Posts.Exists(c.Request.Context(), *input.PostID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
	}
	if input.UserID != nil {
		exists, err := rc.Users.Exists(c.Request.Context(), *input.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
	}

	report := models.Report{
		ReporterID:  user.UserID,
		PostID:      input.PostID,
		UserID:      input.UserID,
		Reason:      input.Reason,
		Description: input.Description,
	}
	if err := rc.Reports.Create(c.Request.Context(), &report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Report submitted successfully",
		"data":    gin.H{"report_id": report.ID},
	})
}
