package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staybook/internal/domains/user/model"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
)

func TestByEmail(t *testing.T) {
	filter := model.ByEmail("  Guest@Example.COM ")

	clause, args := filter.GetWhereClause()

	assert.Equal(t, "(users.email = :email)", clause)
	assert.Equal(t, map[string]any{"email": "guest@example.com"}, args)
	assert.IsType(t, gDto.Filter{}, filter.Filters[0])
}

func TestUser_IsHost(t *testing.T) {
	assert.True(t, model.User{Role: constant.RoleHost}.IsHost())
	assert.False(t, model.User{Role: constant.RoleGuest}.IsHost())
}
