package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dimasadyaksa/vidstream/internal/container"
	handlers "github.com/dimasadyaksa/vidstream/internal/interface/http"
	"github.com/dimasadyaksa/vidstream/internal/interface/middleware"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
)

// UserModule wires the account endpoints.
// Public: POST /api/user/signup, POST /api/user/login, GET|POST /api/user/logout
// Protected: GET /api/user/profile

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	user := rg.Group("/user")
	user.POST("/signup", signupLimiter, m.Handler.Signup)
	user.POST("/login", loginLimiter, m.Handler.Login)
	// Logout only clears the cookie; it works with or without a session.
	user.GET("/logout", m.Handler.Logout)
	user.POST("/logout", m.Handler.Logout)

	auth := user.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	{
		auth.GET("/profile", m.Handler.GetProfile)
	}
}
