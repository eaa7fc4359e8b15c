package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/store"
	"github.com/our-area/api-go/utils"
)

type PostController struct {
	Posts *store.Posts
	Users *store.Users
}

func NewPostController(posts *store.Posts, users *store.Users) *PostController {
	return &PostController{Posts: posts, Users: users}
}

type CreatePostRequest struct {
	AreaID     string     `json:"area_id"`
	Text       string     `json:"text" binding:"required,max=280"`
	Category   string     `json:"category" binding:"required,oneof=event business activity news question other"`
	Images     []string   `json:"images"`
	LocationID *string    `json:"location_id"`
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	EventTime  *time.Time `json:"event_time"`
}

type FeedQuery struct {
	AreaID string `form:"area_id" binding:"required"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// GetFeed returns the paginated, viewer-annotated feed for an area.
// Out-of-range page or limit values are rejected, not clamped.
func (pc *PostController) GetFeed(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := pc.Posts.Feed(c.Request.Context(), query.AreaID, user.UserID, query.Page, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fall back to the author's home area when the request names none.
	areaID := req.AreaID
	if areaID == "" {
		dbUser, err := pc.Users.GetByID(c.Request.Context(), user.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if dbUser.AreaID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User must be assigned to an area to post"})
			return
		}
		areaID = *dbUser.AreaID
	}

	post := models.Post{
		UserID:     user.UserID,
		AreaID:     areaID,
		LocationID: req.LocationID,
		Text:       req.Text,
		Category:   req.Category,
		Lat:        req.Lat,
		Lng:        req.Lng,
		EventTime:  req.EventTime,
	}

	if err := pc.Posts.Create(c.Request.Context(), &post, req.Images); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Post created successfully",
		"data":    gin.H{"post_id": post.ID},
	})
}

// GetPost is public; a valid bearer token personalizes the like and
// wishlist flags.
func (pc *PostController) GetPost(c *gin.Context) {
	postID := c.Param("id")

	viewerID := ""
	if user := utils.GetUser(c); user != nil {
		viewerID = user.UserID
	}

	post, err := pc.Posts.GetPost(c.Request.Context(), postID, viewerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost applies an allow-listed field map to the caller's own post.
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	ownerID, err := pc.Posts.GetOwner(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}
	if ownerID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this post"})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := pc.Posts.Update(c.Request.Context(), postID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	if !updated {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "No changes to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Post updated successfully"})
}
