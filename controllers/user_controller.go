package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/store"
	"github.com/our-area/api-go/utils"
)

type UserController struct {
	Users *store.Users
}

func NewUserController(users *store.Users) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) GetMe(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	dbUser, location, err := uc.Users.GetWithLocation(c.Request.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           dbUser.ID,
		"display_name": dbUser.DisplayName,
		"username":     dbUser.Username,
		"phone":        dbUser.Phone,
		"email":        dbUser.Email,
		"avatar_url":   dbUser.AvatarURL,
		"bio":          dbUser.Bio,
		"area_id":      dbUser.AreaID,
		"is_verified":  dbUser.IsVerified,
		"created_at":   dbUser.CreatedAt,
		"location":     location,
	})
}

// UpdateMe takes a free-form field map; everything outside the user
// allow-list is silently dropped by the update builder.
func (uc *UserController) UpdateMe(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := uc.Users.Update(c.Request.Context(), user.UserID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if !updated {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "No changes to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Profile updated successfully"})
}

type LocationRequest struct {
	Country     *string  `json:"country"`
	State       *string  `json:"state"`
	District    *string  `json:"district"`
	City        *string  `json:"city"`
	PostalCode  *string  `json:"postal_code"`
	AddressLine *string  `json:"address_line"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (uc *UserController) SetLocation(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input LocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := models.Location{
		Country:     input.Country,
		State:       input.State,
		District:    input.District,
		City:        input.City,
		PostalCode:  input.PostalCode,
		AddressLine: input.AddressLine,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}

	if err := uc.Users.UpsertLocation(c.Request.Context(), user.UserID, &loc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Location updated successfully"})
}
