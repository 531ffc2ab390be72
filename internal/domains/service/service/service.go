package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelbook/config"
	"travelbook/infras/otel"
	"travelbook/internal/domains/service/model"
	"travelbook/internal/domains/service/model/dto"
	"travelbook/internal/domains/service/repository"
	"travelbook/shared"
	"travelbook/shared/cache"
	"travelbook/shared/constant"
	gDto "travelbook/shared/dto"
	"travelbook/shared/failure"
)

const (
	CacheSearchServices = "service:search"
	CacheCountServices  = "service:count"
)

// searchOrdering ranks best-rated services first. Unrated rows sink to the
// bottom and the id tiebreak keeps pagination stable.
const searchOrdering = model.TableName + "." + model.FieldRating + " DESC NULLS LAST, " +
	model.TableName + "." + model.FieldID + " ASC"

type Service interface {
	Search(ctx context.Context, params gDto.QueryParams, criteria dto.SearchServicesCriteria) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id int64) (dto.ServiceResponse, error)
	Availability(ctx context.Context, id int64) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo  repository.Service
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Service {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, criteria dto.SearchServicesCriteria) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.OrderBy = searchOrdering
	filter := criteria.ToFilter()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheSearchServices, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search services")

		return res, fmt.Errorf("failed to search services: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountServices, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

// Get returns a service by id. Inactive services resolve too, bookings keep
// linking to them for historical display.
func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if mod.ID == 0 {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(mod)

	return res, nil
}

// Availability reads the live counter. Never cached, the value is the
// ledger's source of truth.
func (s *serviceImpl) Availability(ctx context.Context, id int64) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldAvailability, model.FieldActive)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service availability")

		return res, fmt.Errorf("failed to get service availability: %w", err)
	}

	if mod.ID == 0 {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(mod)

	return res, nil
}
