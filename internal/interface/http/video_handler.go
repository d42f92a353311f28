package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	videoapp "github.com/dimasadyaksa/vidstream/internal/application"
	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	"github.com/dimasadyaksa/vidstream/internal/interface/middleware"
	"github.com/dimasadyaksa/vidstream/pkg/response"
	"github.com/dimasadyaksa/vidstream/pkg/validation"
)

type VideoHandler struct {
	Svc    *videoapp.VideoService
	Logger *logrus.Logger
}

func NewVideoHandler(svc *videoapp.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger}
}

type transformationRequest struct {
	Height  int  `json:"height" binding:"required,gt=0"`
	Width   int  `json:"width" binding:"required,gt=0"`
	Quality *int `json:"quality" binding:"omitempty,gte=1,lte=100"`
}

type createVideoRequest struct {
	Title          string                `json:"title" binding:"required,max=100"`
	Description    string                `json:"description" binding:"required,max=500"`
	VideoURL       string                `json:"videoUrl" binding:"required,url"`
	ThumbnailURL   string                `json:"thumbnailUrl" binding:"required,url"`
	Controls       *bool                 `json:"controls"` // defaults to true
	Transformation transformationRequest `json:"transformation" binding:"required"`
}

func videoBody(v *entity.Video) gin.H {
	return gin.H{
		"id":             v.ID,
		"title":          v.Title,
		"description":    v.Description,
		"videoUrl":       v.VideoURL,
		"thumbnailUrl":   v.ThumbnailURL,
		"controls":       v.Controls,
		"transformation": v.Transformation,
		"userId":         v.UserID,
		"created_at":     v.CreatedAt,
	}
}

// List GET /api/videos (auth optional; anonymous callers get an empty list)
func (h *VideoHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	videos, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list videos failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch videos", nil)
		return
	}
	out := make([]gin.H, 0, len(videos))
	for i := range videos {
		out = append(out, videoBody(&videos[i]))
	}
	response.Success(c, http.StatusOK, out, "videos", gin.H{"count": len(out)})
}

// Create POST /api/videos (auth required)
func (h *VideoHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid data", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Create(c.Request.Context(), uid, videoapp.CreateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Controls:     req.Controls,
		Transformation: entity.Transformation{
			Height:  req.Transformation.Height,
			Width:   req.Transformation.Width,
			Quality: req.Transformation.Quality,
		},
	})
	if err != nil {
		if errors.Is(err, videoapp.ErrDuplicateVideo) {
			response.Error[any](c, http.StatusConflict, "this video has already been uploaded", nil)
			return
		}
		h.Logger.WithError(err).Error("create video failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, videoBody(v), "video saved successfully", nil)
}

// GetByID GET /api/videos/:id (public)
func (h *VideoHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	v, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, videoapp.ErrVideoNotFound) {
			response.Error[any](c, http.StatusNotFound, "video not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get video failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, videoBody(v), "video found", nil)
}

// Search GET /api/videos/search?q= (auth required, caller-scoped)
func (h *VideoHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, 10)
	if err != nil {
		h.Logger.WithError(err).Error("video search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// AuthorizeUpload GET /api/media/upload-auth (auth required)
// Returns a pre-signed PUT URL so the client can push the binary straight to
// the bucket, then register the metadata via POST /api/videos.
func (h *VideoHandler) AuthorizeUpload(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	filename := c.DefaultQuery("filename", "video.mp4")
	contentType := c.DefaultQuery("contentType", "video/mp4")
	if !strings.HasPrefix(contentType, "video/") {
		response.Error[any](c, http.StatusBadRequest, "only video content types allowed", nil)
		return
	}

	signed, err := h.Svc.AuthorizeUpload(uid, filename, contentType)
	if err != nil {
		h.Logger.WithError(err).Error("upload authorization failed")
		response.Error[any](c, http.StatusInternalServerError, "upload authorization failed", nil)
		return
	}
	response.Success(c, http.StatusOK, signed, "upload authorized", nil)
}

// UploadThumbnail POST /api/media/thumbnail (auth required, multipart)
func (h *VideoHandler) UploadThumbnail(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "only image content types allowed", nil)
		return
	}

	url, err := h.Svc.UploadThumbnail(c.Request.Context(), uid, file, header.Filename, contentType)
	if err != nil {
		h.Logger.WithError(err).Error("thumbnail upload failed")
		response.Error[any](c, http.StatusInternalServerError, "thumbnail upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thumbnail_url": url}, "thumbnail uploaded", nil)
}
