package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dimasadyaksa/vidstream/internal/container"
	handlers "github.com/dimasadyaksa/vidstream/internal/interface/http"
	"github.com/dimasadyaksa/vidstream/internal/interface/middleware"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
)

// VideoModule wires the video catalogue and the media upload handshake.
// Optional auth: GET /api/videos (anonymous callers get an empty list)
// Public: GET /api/videos/:id
// Protected: POST /api/videos, GET /api/videos/search, media endpoints

type VideoModule struct {
	Handler *handlers.VideoHandler
	JWT     *helpers.JWTManager
}

func NewVideoModule(h *handlers.VideoHandler, jwt *helpers.JWTManager) *VideoModule {
	return &VideoModule{Handler: h, JWT: jwt}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	rg.GET("/videos", middleware.OptionalAuth(m.JWT), m.Handler.List)
	rg.GET("/videos/:id", m.Handler.GetByID)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/videos", m.Handler.Create)
		auth.GET("/videos/search", m.Handler.Search)
		auth.GET("/media/upload-auth", m.Handler.AuthorizeUpload)
		auth.POST("/media/thumbnail", m.Handler.UploadThumbnail)
	}
}
