//go:build wireinject
// +build wireinject

package di

import (
	"staybook/config"
	"staybook/infras/jwt"
	"staybook/infras/kafka"
	"staybook/infras/otel"
	"staybook/infras/postgres"
	"staybook/infras/redis"
	"staybook/infras/s3"
	"staybook/permissions"
	"staybook/shared/cache"
	"staybook/transport/http"
	"staybook/transport/http/middleware"
	"staybook/transport/http/router"
	"staybook/transport/worker"

	authService "staybook/internal/domains/auth/service"
	commentRepository "staybook/internal/domains/comment/repository"
	commentService "staybook/internal/domains/comment/service"
	favoriteRepository "staybook/internal/domains/favorite/repository"
	favoriteService "staybook/internal/domains/favorite/service"
	listingRepository "staybook/internal/domains/listing/repository"
	listingService "staybook/internal/domains/listing/service"
	metricService "staybook/internal/domains/metric/service"
	"staybook/internal/domains/reservation/event"
	reservationRepository "staybook/internal/domains/reservation/repository"
	reservationService "staybook/internal/domains/reservation/service"
	userRepository "staybook/internal/domains/user/repository"
	userService "staybook/internal/domains/user/service"

	authHandler "staybook/internal/handlers/auth"
	commentHandler "staybook/internal/handlers/comment"
	favoriteHandler "staybook/internal/handlers/favorite"
	listingHandler "staybook/internal/handlers/listing"
	metricHandler "staybook/internal/handlers/metric"
	reservationHandler "staybook/internal/handlers/reservation"
	userHandler "staybook/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	event.NewPublisher,
	reservationService.New,
)

var reviewDomain = wire.NewSet(
	commentRepository.New,
	commentService.New,
	favoriteRepository.New,
	favoriteService.New,
	metricService.New,
)

var domains = wire.NewSet(
	userDomain,
	listingDomain,
	reservationDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	listingHandler.New,
	reservationHandler.New,
	commentHandler.New,
	favoriteHandler.New,
	metricHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		worker.New,
	)

	return &worker.Worker{}
}
