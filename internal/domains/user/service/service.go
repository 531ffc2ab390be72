package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelbook/infras/jwt"
	"travelbook/infras/otel"
	"travelbook/internal/domains/user/model"
	"travelbook/internal/domains/user/model/dto"
	"travelbook/internal/domains/user/repository"
	"travelbook/shared"
	"travelbook/shared/constant"
	"travelbook/shared/failure"
)

type User interface {
	GetOrCreate(ctx context.Context, claims *jwt.Claims) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetOrCreate refreshes the identity projection from the verified claims and
// returns the stored row.
func (s *serviceImpl) GetOrCreate(ctx context.Context, claims *jwt.Claims) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetOrCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if claims == nil || claims.UserID == "" {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = s.repo.Upsert(ctx, dto.UserFromClaims(claims)); err != nil {
		log.Error().Err(err).Msg("failed to upsert user")

		return res, fmt.Errorf("failed to upsert user: %w", err)
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(claims.UserID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}
