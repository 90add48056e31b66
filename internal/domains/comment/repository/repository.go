package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/infras/otel"
	"staybook/infras/postgres"
	"staybook/internal/domains/comment/model"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/logger"
	gRepo "staybook/shared/repository"
)

type Comment interface {
	Insert(ctx context.Context, model model.Comment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Comment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Comment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	AverageRating(ctx context.Context, listingID string) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Comment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Comment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Comment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AverageRating returns the raw mean rating of a listing, 0 without comments.
func (repo *repositoryImpl) AverageRating(ctx context.Context, listingID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".comment.AverageRating")
	defer scope.End()

	query := fmt.Sprintf("SELECT COALESCE(AVG(%s), 0) FROM %s WHERE %s = $1", model.FieldRating, model.TableName, model.FieldListingID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var average float64
	if err := repo.db.Read.GetContext(ctx, &average, query, listingID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get average rating (%s): %w", model.EntityName, err)
	}

	return average, nil
}
