package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/infras/otel"
	"staybook/shared/constant"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "favorite:"

// Favorite keeps the favorite listing IDs of every user in one Redis set.
type Favorite interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	IDs(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID, listingID string) (bool, error)
}

type repositoryImpl struct {
	client *redis.Client
	otel   otel.Otel
}

func New(client *redis.Client, otel otel.Otel) Favorite {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (repo *repositoryImpl) Add(ctx context.Context, userID, listingID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".favorite.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = repo.client.SAdd(ctx, key(userID), listingID).Err(); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to add favorite")

		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Remove(ctx context.Context, userID, listingID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".favorite.Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = repo.client.SRem(ctx, key(userID), listingID).Err(); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to remove favorite")

		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) IDs(ctx context.Context, userID string) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".favorite.IDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err = repo.client.SMembers(ctx, key(userID)).Result()
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to get favorites")

		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return ids, nil
}

func (repo *repositoryImpl) Contains(ctx context.Context, userID, listingID string) (ok bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".favorite.Contains")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ok, err = repo.client.SIsMember(ctx, key(userID), listingID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return ok, nil
}

func key(userID string) string {
	return keyPrefix + userID
}
