package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/store"
	"github.com/our-area/api-go/utils"
)

type InteractionController struct {
	Toggles *store.Toggles
}

func NewInteractionController(toggles *store.Toggles) *InteractionController {
	return &InteractionController{Toggles: toggles}
}

// ToggleLike flips the caller's like on a post.
func (ic *InteractionController) ToggleLike(c *gin.Context) {
	ic.toggle(c, store.ToggleLike, "liked", "unliked")
}

// ToggleWishlist flips the caller's wishlist save on a post.
func (ic *InteractionController) ToggleWishlist(c *gin.Context) {
	ic.toggle(c, store.ToggleWishlist, "added", "removed")
}

func (ic *InteractionController) toggle(c *gin.Context, kind store.ToggleKind, onAction, offAction string) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	activated, err := ic.Toggles.Toggle(c.Request.Context(), kind, postID, user.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle"})
		return
	}

	action := offAction
	if activated {
		action = onAction
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "action": action})
}
