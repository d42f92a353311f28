package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/dimasadyaksa/vidstream/internal/application"
	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	"github.com/dimasadyaksa/vidstream/internal/interface/middleware"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
	"github.com/dimasadyaksa/vidstream/pkg/response"
	"github.com/dimasadyaksa/vidstream/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userBody(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Signup POST /api/user/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}

	u, sess, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "user already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, userBody(u), "user created successfully", gin.H{"expires_at": sess.ExpiresAt})
}

// Login POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}

	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, userapp.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "invalid password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, userBody(u), "login successful", gin.H{"expires_at": sess.ExpiresAt})
}

// Logout GET|POST /api/user/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logout successful", nil)
}

// GetProfile GET /api/user/profile (auth required)
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, userBody(u), "profile", nil)
}
