// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jmvaldes/setlist-helper/internal/handler"
	"github.com/jmvaldes/setlist-helper/internal/middleware"
	"github.com/jmvaldes/setlist-helper/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; account endpoints that need a valid
// access token live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body without requiring a
	// bearer, so a session can be ended even after the access token
	// expired.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	auth.GET("/me", a.Me)
	auth.PUT("/me/password", a.ChangePassword)
	auth.POST("/logout", a.Logout)
}

// RegisterSongs registers catalog routes. Reads are open to every
// authenticated role; catalog mutations are admin only.
func RegisterSongs(e *echo.Echo, s *handler.SongHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/songs")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(extra...)

	read := g.Group("")
	read.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	read.GET("", s.ListSongs)
	read.GET("/:id", s.GetSong)

	admin := g.Group("")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", s.CreateSong)
	admin.PUT("/:id", s.UpdateSong)
	admin.DELETE("/:id", s.DeleteSong)
}

// RegisterSetlists registers setlist routes for any authenticated role.
func RegisterSetlists(e *echo.Echo, s *handler.SetlistHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/setlists")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(extra...)
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	g.GET("", s.ListSetlists)
	g.POST("", s.CreateSetlist)
	g.GET("/:id", s.GetSetlist)
	g.DELETE("/:id", s.DeleteSetlist)
}
