package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/auth"
	"github.com/our-area/api-go/controllers"
	"github.com/our-area/api-go/middleware"
)

func SetupPostRoutes(
	r *gin.Engine,
	issuer *auth.Issuer,
	postController *controllers.PostController,
	interactionController *controllers.InteractionController,
	commentController *controllers.CommentController,
) {
	// Public post reads. A bearer token, when present, personalizes the
	// like/wishlist flags.
	public := r.Group("/posts")
	public.Use(middleware.OptionalAuthMiddleware(issuer))
	{
		public.GET("/:id", postController.GetPost)
		public.GET("/:id/comments", commentController.ListComments)
	}

	protected := r.Group("/posts")
	protected.Use(middleware.AuthMiddleware(issuer))
	{
		protected.GET("", postController.GetFeed)
		protected.GET("/feed", postController.GetFeed)
		protected.POST("", postController.CreatePost)
		protected.PUT("/:id", postController.UpdatePost)
		protected.POST("/:id/like", interactionController.ToggleLike)
		protected.POST("/:id/wishlist", interactionController.ToggleWishlist)
		protected.POST("/:id/comments", commentController.AddComment)
		protected.PUT("/:id/comments/:commentId", commentController.UpdateComment)
	}
}
