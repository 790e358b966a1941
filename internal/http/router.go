package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/handlers"
	"github.com/you/blogsvc/internal/http/middleware"
)

// BuildRouter wires every route. The auth group is public; everything under
// /api/v1 requires the cookie pair, reads sit behind the maintenance gate
// and the admin group behind the ADMIN role.
func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.PostHandlers,
	prh *handlers.ProductHandlers,
	sh *handlers.SystemHandlers,
	authmw *middleware.AuthMW,
	userRepo domain.UserRepository,
	settings domain.SettingRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/v1/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify-otp", ah.VerifyOtp)
	auth.POST("/confirm", ah.ConfirmPassword)
	auth.POST("/login", ah.Login)
	auth.POST("/forget-password", ah.ForgetPassword)
	auth.POST("/verify", ah.VerifyResetOtp)
	auth.POST("/reset-password", ah.ResetPassword)

	api := r.Group("/api/v1", authmw.WithCookieAuth())
	api.POST("/auth/logout", ah.Logout)

	reads := api.Group("/", middleware.Maintenance(settings))
	reads.GET("/posts", ph.List)
	reads.GET("/posts/infinite", ph.ListInfinite)
	reads.GET("/posts/:id", ph.Get)
	reads.GET("/products", prh.List)
	reads.GET("/products/:id", prh.Get)

	adm := r.Group("/api/v1/admin", authmw.WithCookieAuth())

	// Authors manage their own posts; the service layer enforces ownership.
	posts := adm.Group("/", middleware.RequireAnyOf(userRepo, domain.RoleAdmin, domain.RoleAuthor))
	posts.POST("/posts", ph.Create)
	posts.PATCH("/posts/:id", ph.Update)
	posts.DELETE("/posts/:id", ph.Delete)

	adminOnly := adm.Group("/", middleware.RequireAnyOf(userRepo, domain.RoleAdmin))
	adminOnly.POST("/products", prh.Create)
	adminOnly.PATCH("/products/:id", prh.Update)
	adminOnly.DELETE("/products/:id", prh.Delete)
	adminOnly.POST("/maintenance", sh.SetMaintenance)
	adminOnly.GET("/users", sh.ListUsers)

	return r
}
