package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/blog/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	User     *apiHandler.UserHandler
	Post     *apiHandler.PostHandler
	Category *apiHandler.CategoryHandler
	Health   *apiHandler.HealthHandler
	// Metrics is mounted at /metrics when non-nil.
	Metrics fasthttp.RequestHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Guards wraps protected routes. Admin runs after Authenticate.
type Guards struct {
	Authenticate Middleware
	Admin        Middleware
}

func New(handlers Handlers, guards Guards) *router.Router {
	r := router.New()

	auth := guards.Authenticate
	admin := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return auth(guards.Admin(h))
	}

	r.GET("/health", handlers.Health.Check)
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics)
	}

	api := r.Group("/api")

	// Auth routes
	api.POST("/auth/register", handlers.Auth.Register)
	api.GET("/auth/confirm/{token}", handlers.Auth.ConfirmEmail)
	api.POST("/auth/login", handlers.Auth.Login)
	api.POST("/auth/logout", handlers.Auth.Logout)
	api.POST("/auth/password-reset", handlers.Auth.RequestPasswordReset)
	api.POST("/auth/password-reset/{confirmToken}", handlers.Auth.ConfirmPasswordReset)

	// Users
	api.GET("/users", admin(handlers.User.List))
	api.GET("/users/me", auth(handlers.User.Me))
	api.GET("/users/{user_id}", auth(handlers.User.Get))

	// Posts
	api.GET("/posts", auth(handlers.Post.List))
	api.POST("/posts", auth(handlers.Post.Create))
	api.GET("/posts/random", auth(handlers.Post.Random))
	api.GET("/posts/{post_id}", auth(handlers.Post.Get))
	api.PATCH("/posts/{post_id}", auth(handlers.Post.Update))
	api.DELETE("/posts/{post_id}", auth(handlers.Post.Delete))
	api.GET("/posts/{post_id}/comments", auth(handlers.Post.Comments))
	api.POST("/posts/{post_id}/comments", auth(handlers.Post.CreateComment))
	api.GET("/posts/{post_id}/categories", auth(handlers.Post.Categories))
	api.GET("/posts/{post_id}/like", auth(handlers.Post.Likes))
	api.POST("/posts/{post_id}/like", auth(handlers.Post.Like))
	api.DELETE("/posts/{post_id}/like", auth(handlers.Post.Unlike))

	// Categories
	api.GET("/categories", auth(handlers.Category.List))
	api.POST("/categories", admin(handlers.Category.Create))
	api.GET("/categories/{category_id}", auth(handlers.Category.Get))
	api.PATCH("/categories/{category_id}", admin(handlers.Category.Update))
	api.DELETE("/categories/{category_id}", admin(handlers.Category.Delete))
	api.GET("/categories/{category_id}/posts", auth(handlers.Category.Posts))

	return r
}
