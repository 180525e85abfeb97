package setup

import (
	"github.com/feedline-dev/feedline/internal/config"
	"github.com/feedline-dev/feedline/internal/handler"
	"github.com/feedline-dev/feedline/internal/jwt"
	"github.com/feedline-dev/feedline/internal/service"
	"github.com/feedline-dev/feedline/internal/storage/fs"
	"github.com/feedline-dev/feedline/internal/storage/pg"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Media   *fs.Storage
	Handler *handler.Handler
	Jwt     jwt.JwtService
	Config  *config.Config
}

// SetupDependencies initializes everything the application needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService, &cfg.Public)
	posts := service.NewPost(storage, storage, media, &cfg.Public)

	h := handler.New(auth, posts, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Media:   media,
		Handler: h,
		Jwt:     jwtService,
		Config:  cfg,
	}, nil
}
