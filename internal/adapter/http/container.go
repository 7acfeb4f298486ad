package http

import (
	"userapp/internal/adapter/http/handler"
	"userapp/internal/core/port"
	"userapp/internal/core/service"
	"userapp/pkg/config"
)

type Container struct {
	UserRepo port.UserRepository
	Cache    port.CacheRepository

	UserUseCase port.UserService

	UserHandler *handler.UserHandler
}

func NewContainer(repo port.UserRepository, cache port.CacheRepository, logger *config.AppLogger) *Container {
	userSvc := service.NewUserService(repo, cache)

	userHandler := handler.NewUserHandler(userSvc, logger)

	return &Container{
		UserRepo: repo,
		Cache:    cache,

		UserUseCase: userSvc,
		UserHandler: userHandler,
	}
}
