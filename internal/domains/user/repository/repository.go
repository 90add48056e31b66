package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"staybook/infras/otel"
	"staybook/infras/postgres"
	"staybook/internal/domains/user/model"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	gRepo "staybook/shared/repository"
	"time"
)

// User persists accounts. Emails are stored normalized, see model.ByEmail.
type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// RecordLogin stamps last_login. The account is its own modifier.
func (r *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time) error {
	fields := map[string]any{
		model.FieldLastLogin:     at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: id,
	}

	return r.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
}
