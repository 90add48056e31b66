package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/infras/otel"
	"staybook/infras/postgres"
	"staybook/internal/domains/reservation/model"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/logger"
	gRepo "staybook/shared/repository"
	"strings"
	"time"
)

var returningColumns = []string{
	model.FieldID, model.FieldListingID, model.FieldGuestID, model.FieldCheckIn, model.FieldCheckOut,
	model.FieldGuestCount, model.FieldTotal, model.FieldStatus,
	constant.FieldCreatedAt, constant.FieldModifiedAt, constant.FieldCreatedBy, constant.FieldModifiedBy,
}

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CompletePast(ctx context.Context, before time.Time, modifiedBy string) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CompletePast moves confirmed stays that checked out before the given instant
// to COMPLETED and returns the affected rows.
func (repo *repositoryImpl) CompletePast(ctx context.Context, before time.Time, modifiedBy string) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CompletePast")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :completed, %s = :before, %s = :modified_by WHERE %s = :confirmed AND %s < :before RETURNING %s",
		model.TableName, model.FieldStatus, constant.FieldModifiedAt, constant.FieldModifiedBy, model.FieldStatus, model.FieldCheckOut,
		strings.Join(returningColumns, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"completed":   model.StatusCompleted,
		"confirmed":   model.StatusConfirmed,
		"before":      before,
		"modified_by": modifiedBy,
	}

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var completed []model.Reservation
	if err = prepare.SelectContext(ctx, &completed, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to complete past reservations: %w", err)
	}

	return completed, nil
}
