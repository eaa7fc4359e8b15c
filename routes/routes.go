package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/auth"
	"github.com/our-area/api-go/config"
	"github.com/our-area/api-go/controllers"
	"github.com/our-area/api-go/middleware"
	"github.com/our-area/api-go/storage"
	"github.com/our-area/api-go/store"
)

func SetupRoutes(r *gin.Engine, q storage.Querier, cfg config.Config) {
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	st := store.New(q)

	// Initialize controllers
	authController := controllers.NewAuthController(st.Users, issuer)
	userController := controllers.NewUserController(st.Users)
	areaController := controllers.NewAreaController(st.Areas)
	postController := controllers.NewPostController(st.Posts, st.Users)
	interactionController := controllers.NewInteractionController(st.Toggles)
	commentController := controllers.NewCommentController(st.Comments, st.Posts)
	reportController := controllers.NewReportController(st.Reports, st.Posts, st.Users)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Our Area API is running"})
	})

	// Public routes
	r.POST("/signup", authController.Signup)
	r.POST("/login", authController.Login)

	SetupAreaRoutes(r, areaController)
	SetupPostRoutes(r, issuer, postController, interactionController, commentController)
	SetupUserRoutes(r, issuer, userController)
	SetupReportRoutes(r, issuer, reportController)
}

func SetupUserRoutes(r *gin.Engine, issuer *auth.Issuer, userController *controllers.UserController) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(issuer))
	{
		users.GET("/me", userController.GetMe)
		users.PUT("/me", userController.UpdateMe)
		users.POST("/me/location", userController.SetLocation)
	}
}

func SetupAreaRoutes(r *gin.Engine, areaController *controllers.AreaController) {
	areas := r.Group("/areas")
	{
		areas.GET("", areaController.ListAreas)
		areas.GET("/near", areaController.GetNearbyAreas)
	}
}

func SetupReportRoutes(r *gin.Engine, issuer *auth.Issuer, reportController *controllers.ReportController) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(issuer))
	{
		reports.POST("", reportController.CreateReport)
	}
}
