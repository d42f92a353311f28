package router

import (
	app "github.com/dimasadyaksa/vidstream/internal/application"
	"github.com/dimasadyaksa/vidstream/internal/container"
	pginfra "github.com/dimasadyaksa/vidstream/internal/infrastructure/postgres"
	handlers "github.com/dimasadyaksa/vidstream/internal/interface/http"
	"github.com/dimasadyaksa/vidstream/internal/router/modules"
)

func buildUserModule() *modules.UserModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := app.NewUserService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetEmailPub(),
	)
	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure(),
	)
	return modules.NewUserModule(handler, container.GetJWT())
}

func buildVideoModule() *modules.VideoModule {
	cfg := container.GetConfig()
	repo := pginfra.NewVideoRepository(container.GetPGPool())
	service := &app.VideoService{
		Repo:          repo,
		Redis:         container.GetRedis(),
		Logger:        container.GetLogger(),
		Pub:           container.GetEventPub(),
		GCS:           container.GetGCS(),
		GCSBucket:     cfg.GCSBucket,
		UploadURLTTL:  cfg.UploadURLTTL,
		ES:            container.GetES(),
		ESVideosIndex: cfg.ESVideosIndex,
	}
	handler := handlers.NewVideoHandler(service, container.GetLogger())
	return modules.NewVideoModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildUserModule())
	r.Add(buildVideoModule())
}
