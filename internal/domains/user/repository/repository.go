package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"travelbook/infras/otel"
	"travelbook/infras/postgres"
	"travelbook/internal/domains/user/model"
	"travelbook/shared/constant"
	gDto "travelbook/shared/dto"
	"travelbook/shared/logger"
	gRepo "travelbook/shared/repository"
)

type User interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Upsert(ctx context.Context, user model.User) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the user row or refreshes its claim-derived columns when the
// id already exists. created_at survives the conflict path.
func (repo *repositoryImpl) Upsert(ctx context.Context, user model.User) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Upsert")
	defer scope.End()

	columns := []string{
		model.FieldID,
		model.FieldEmail,
		model.FieldFirstName,
		model.FieldLastName,
		model.FieldProfileImageURL,
		constant.FieldCreatedAt,
		constant.FieldModifiedAt,
	}

	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	updates := []string{}

	for _, col := range columns {
		if col == model.FieldID || col == constant.FieldCreatedAt {
			continue
		}

		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		model.TableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldID,
		strings.Join(updates, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, user)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}
