package router

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	categoryHandler := handlers.NewCategoryHandler()
	userHandler := handlers.NewUserHandler()
	pageHandler := handlers.NewPageHandler()

	// Public Routes
	r.GET("/", postHandler.Index)
	r.GET("/posts/:post_id", postHandler.Detail)
	r.GET("/category/:slug", categoryHandler.Show)
	r.GET("/profile/:username", userHandler.Profile)

	r.GET("/pages/about", pageHandler.About)
	r.GET("/pages/rules", pageHandler.Rules)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/posts/create", postHandler.ShowCreate)
		authorized.POST("/posts/create", postHandler.Create)
		authorized.GET("/posts/:post_id/edit", postHandler.ShowEdit)
		authorized.POST("/posts/:post_id/edit", postHandler.Update)
		authorized.POST("/posts/:post_id/delete", postHandler.Delete)

		authorized.POST("/posts/:post_id/comment", commentHandler.Create)
		authorized.GET("/posts/:post_id/edit_comment/:comment_id", commentHandler.ShowEdit)
		authorized.POST("/posts/:post_id/edit_comment/:comment_id", commentHandler.Update)
		authorized.POST("/posts/:post_id/delete_comment/:comment_id", commentHandler.Delete)

		authorized.GET("/profile/edit", userHandler.ShowEdit)
		authorized.POST("/profile/edit", userHandler.Update)
	}

	r.NoRoute(pageHandler.NotFound)
}
