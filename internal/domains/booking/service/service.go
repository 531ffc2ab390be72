package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"travelbook/config"
	"travelbook/infras/kafka"
	"travelbook/infras/otel"
	"travelbook/internal/domains/booking/model"
	"travelbook/internal/domains/booking/model/dto"
	"travelbook/internal/domains/booking/repository"
	catalogService "travelbook/internal/domains/service/service"
	"travelbook/shared"
	"travelbook/shared/cache"
	"travelbook/shared/constant"
	gDto "travelbook/shared/dto"
	"travelbook/shared/failure"
)

const (
	cacheGetAllBookings = "booking:gets"
)

// listOrdering shows the most recent booking first.
const listOrdering = model.TableName + "." + constant.FieldCreatedAt + " DESC"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAllByUser(ctx context.Context) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id int64) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo  repository.Booking
	cfg   *config.Config
	cache cache.RedisCache
	kafka kafka.Client
	otel  otel.Otel
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		kafka: kafkaClient,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := userFromContext(ctx)
	if err != nil {
		return res, err
	}

	booking, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if booking.CheckInDate != nil && booking.CheckOutDate != nil && !booking.CheckOutDate.After(*booking.CheckInDate) {
		return res, failure.BadRequestFromString("checkOutDate must be after checkInDate") // nolint:wrapcheck
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		log.Error().Err(err).Int64("serviceId", req.ServiceID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterMutation(ctx, dto.EventBookingCreated, created)

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAllByUser(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAllByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := userFromContext(ctx)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{OrderBy: listOrdering}
	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBookings, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := userFromContext(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != userID {
		return res, failure.Forbidden("access denied") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := userFromContext(ctx)
	if err != nil {
		return res, err
	}

	cancelled, err := s.repo.Cancel(ctx, id, userID)
	if err != nil {
		log.Error().Err(err).Int64("bookingId", id).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.afterMutation(ctx, dto.EventBookingCancelled, cancelled)

	res.FromModel(cancelled)

	return res, nil
}

// afterMutation runs the post-commit side effects: cache invalidation and the
// booking event. Neither blocks nor fails the request.
func (s *serviceImpl) afterMutation(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBookings)
		shared.InvalidateCaches(c, s.cache, catalogService.CacheSearchServices)
		shared.InvalidateCaches(c, s.cache, catalogService.CacheCountServices)
	}()

	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewBookingEvent(eventType, booking)
		message := kafka.Message{
			Key:   strconv.FormatInt(booking.ID, 10),
			Value: event,
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish booking event")
		}
	}()
}

func userFromContext(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return "", failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	return userID, nil
}
