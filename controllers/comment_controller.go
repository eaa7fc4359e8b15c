package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/store"
	"github.com/our-area/api-go/utils"
)

type CommentController struct {
	Comments *store.Comments
	Posts    *store.Posts
}

func NewCommentController(comments *store.Comments, posts *store.Posts) *CommentController {
	return &CommentController{Comments: comments, Posts: posts}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required,max=280"`
}

// ListComments is public and returns a post's comments oldest first.
func (cc *CommentController) ListComments(c *gin.Context) {
	comments, err := cc.Comments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (cc *CommentController) AddComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	var input CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := cc.Posts.Exists(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID: postID,
		UserID: user.UserID,
		Text:   input.Text,
	}
	if err := cc.Comments.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Comment added successfully",
		"data":    gin.H{"comment_id": comment.ID},
	})
}

// UpdateComment edits the text of the caller's own comment.
func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")
	commentID := c.Param("commentId")

	var input CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, err := cc.Comments.GetOwner(c.Request.Context(), commentID, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comment"})
		return
	}
	if ownerID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this comment"})
		return
	}

	if err := cc.Comments.UpdateText(c.Request.Context(), commentID, input.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Comment updated successfully"})
}
