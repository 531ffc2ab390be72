//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"travelbook/config"
	"travelbook/infras/jwt"
	"travelbook/infras/kafka"
	"travelbook/infras/otel"
	"travelbook/infras/postgres"
	"travelbook/infras/redis"
	"travelbook/shared/cache"
	"travelbook/transport/http"
	"travelbook/transport/http/middleware"
	"travelbook/transport/http/router"

	bookingRepository "travelbook/internal/domains/booking/repository"
	bookingService "travelbook/internal/domains/booking/service"
	serviceRepository "travelbook/internal/domains/service/repository"
	serviceService "travelbook/internal/domains/service/service"
	userRepository "travelbook/internal/domains/user/repository"
	userService "travelbook/internal/domains/user/service"

	authHandler "travelbook/internal/handlers/auth"
	bookingHandler "travelbook/internal/handlers/booking"
	serviceHandler "travelbook/internal/handlers/service"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var serviceDomain = wire.NewSet(
	serviceRepository.New,
	serviceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	serviceDomain,
	bookingDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	serviceHandler.New,
	bookingHandler.New,
	authHandler.New,
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
