// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/handler"
	"github.com/devconnector/devconnector/internal/middleware"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Post    *handler.PostHandler
	Github  *handler.GithubHandler
}

// RegisterRoutes registers all application routes. jwtSecret feeds the
// token gate on protected routes; limiter guards the credential endpoints
// and cache wraps the public read endpoints (either may be a pass-through).
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, limiter, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	gate := middleware.TokenAuth(jwtSecret)

	// Users: registration issues the first session token.
	e.POST("/api/users", h.Auth.Register, limiter)

	// Auth: login plus the current authenticated user.
	e.POST("/api/auth", h.Auth.Login, limiter)
	e.GET("/api/auth", h.Auth.Me, gate)

	// Profiles. Listing and per-user lookup are public; everything that
	// mutates runs behind the gate.
	profile := e.Group("/api/profile")
	profile.GET("", h.Profile.List, cache)
	profile.GET("/user/:user_id", h.Profile.GetByUser, cache)
	profile.GET("/github/:username", h.Github.Repos, cache)
	profile.GET("/me", h.Profile.Me, gate)
	profile.POST("", h.Profile.Upsert, gate)
	profile.DELETE("", h.Profile.DeleteAccount, gate)
	profile.PUT("/experience", h.Profile.AddExperience, gate)
	profile.DELETE("/experience/:exp_id", h.Profile.RemoveExperience, gate)
	profile.PUT("/education", h.Profile.AddEducation, gate)
	profile.DELETE("/education/:edu_id", h.Profile.RemoveEducation, gate)

	// Posts: the whole feed requires a session.
	posts := e.Group("/api/posts", gate)
	posts.POST("", h.Post.Create)
	posts.GET("", h.Post.List)
	posts.GET("/:id", h.Post.Get)
	posts.DELETE("/:id", h.Post.Delete)
	posts.PUT("/like/:id", h.Post.Like)
	posts.PUT("/unlike/:id", h.Post.Unlike)
}
