package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dimasadyaksa/vidstream/internal/application"
	"github.com/dimasadyaksa/vidstream/internal/interface/middleware"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
	"github.com/dimasadyaksa/vidstream/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUserRepo
	videos *fakeVideoRepo
	jwt    *helpers.JWTManager
}

// newTestEnv wires the handlers onto a throwaway engine with the same route
// layout the server registers, minus the rate limiters.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))

	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	jwtMgr := helpers.NewJWTManager("handler-test-secret", time.Hour)

	userSvc := application.NewUserService(users, jwtMgr, logger, nil)
	videoSvc := &application.VideoService{Repo: videos, Logger: logger}

	uh := NewUserHandler(userSvc, logger, "", false)
	vh := NewVideoHandler(videoSvc, logger)

	r := gin.New()
	api := r.Group("/api")

	user := api.Group("/user")
	user.POST("/signup", uh.Signup)
	user.POST("/login", uh.Login)
	user.GET("/logout", uh.Logout)
	user.POST("/logout", uh.Logout)
	user.GET("/profile", middleware.RequireAuth(jwtMgr), uh.GetProfile)

	api.GET("/videos", middleware.OptionalAuth(jwtMgr), vh.List)
	api.GET("/videos/:id", vh.GetByID)
	api.POST("/videos", middleware.RequireAuth(jwtMgr), vh.Create)

	return &testEnv{router: r, users: users, videos: videos, jwt: jwtMgr}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// sessionCookie extracts the session cookie from a signup/login response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer func() { _ = res.Body.Close() }()
	for _, c := range res.Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c
		}
	}
	t.Fatalf("response has no %q cookie", helpers.SessionCookieName)
	return nil
}

// signup registers a user through the HTTP surface and returns its session.
func (e *testEnv) signup(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/user/signup", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionCookie(t, w)
}

func videoPayload(url string) gin.H {
	return gin.H{
		"title":        "Morning run",
		"description":  "Lap around the park",
		"videoUrl":     url,
		"thumbnailUrl": url + ".jpg",
		"transformation": gin.H{
			"height": 1920,
			"width":  1080,
		},
	}
}
