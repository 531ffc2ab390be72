package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelbook/infras/otel"
	"travelbook/infras/postgres"
	"travelbook/internal/domains/booking/model"
	serviceModel "travelbook/internal/domains/service/model"
	serviceRepo "travelbook/internal/domains/service/repository"
	"travelbook/shared"
	"travelbook/shared/constant"
	gDto "travelbook/shared/dto"
	"travelbook/shared/failure"
	gRepo "travelbook/shared/repository"
	"travelbook/shared/timezone"
)

type Booking interface {
	// Create books one unit of the service. The availability check, the
	// booking insert and the counter decrement commit or roll back together.
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)

	// Cancel transitions the caller's booking to cancelled and returns the
	// unit to the pool. Cancelling an already cancelled booking is a no-op.
	// A booking owned by someone else is indistinguishable from a missing one.
	Cancel(ctx context.Context, id int64, userID string) (model.Booking, error)

	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	serviceRepo serviceRepo.Service
	db          *postgres.Connection
	otel        otel.Otel
}

func New(db *postgres.Connection, serviceRepository serviceRepo.Service, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		serviceRepo: serviceRepository,
		db:          db,
		otel:        otel,
	}
}

func (repo *repositoryImpl) Create(ctx context.Context, booking model.Booking) (res model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return res, failure.Unavailable("storage unavailable") // nolint:wrapcheck
	}

	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).Msg("failed to rollback create booking transaction")
		}
	}()

	serviceFilter := shared.FilterByID(booking.ServiceID, serviceModel.FieldID, serviceModel.TableName)

	svc, found, err := repo.serviceRepo.GetForUpdateTx(ctx, tx, serviceFilter)
	if err != nil {
		return res, fmt.Errorf("failed to lock service: %w", err)
	}

	if !found || !svc.IsActive || svc.Availability <= 0 {
		return res, failure.Conflict("Service is no longer available") // nolint:wrapcheck
	}

	if err = booking.SnapshotService(svc); err != nil {
		return res, fmt.Errorf("failed to snapshot service: %w", err)
	}

	id, err := repo.InsertTxReturningID(ctx, tx, booking)
	if err != nil {
		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	err = repo.serviceRepo.UpdateTx(ctx, tx, map[string]any{
		serviceModel.FieldAvailability: svc.Availability - 1,
		constant.FieldModifiedAt:       timezone.Now(),
	}, serviceFilter)
	if err != nil {
		return res, fmt.Errorf("failed to decrement availability: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit create booking transaction")

		return res, failure.Unavailable("storage unavailable") // nolint:wrapcheck
	}

	booking.ID = id

	return booking, nil
}

func (repo *repositoryImpl) Cancel(ctx context.Context, id int64, userID string) (res model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return res, failure.Unavailable("storage unavailable") // nolint:wrapcheck
	}

	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).Msg("failed to rollback cancel booking transaction")
		}
	}()

	bookingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	booking, found, err := repo.GetForUpdateTx(ctx, tx, bookingFilter)
	if err != nil {
		return res, fmt.Errorf("failed to lock booking: %w", err)
	}

	if !found {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		return booking, nil
	}

	now := timezone.Now()

	err = repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: now,
	}, bookingFilter)
	if err != nil {
		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	serviceFilter := shared.FilterByID(booking.ServiceID, serviceModel.FieldID, serviceModel.TableName)

	svc, found, err := repo.serviceRepo.GetForUpdateTx(ctx, tx, serviceFilter)
	if err != nil {
		return res, fmt.Errorf("failed to lock service: %w", err)
	}

	if found {
		err = repo.serviceRepo.UpdateTx(ctx, tx, map[string]any{
			serviceModel.FieldAvailability: svc.Availability + 1,
			constant.FieldModifiedAt:       now,
		}, serviceFilter)
		if err != nil {
			return res, fmt.Errorf("failed to increment availability: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit cancel booking transaction")

		return res, failure.Unavailable("storage unavailable") // nolint:wrapcheck
	}

	booking.Status = model.StatusCancelled
	booking.ModifiedAt = now

	return booking, nil
}
