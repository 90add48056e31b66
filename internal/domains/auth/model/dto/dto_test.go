package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staybook/infras/jwt"
	"staybook/internal/domains/auth/model/dto"
	"staybook/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, "HOST")

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, "HOST", response.Role)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Ana"
	req := dto.RegisterRequest{Email: " Ana@Example.com", Password: "secret123", FullName: &name}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleGuest, user.Role)
	assert.Equal(t, &name, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, user.CreatedBy)
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair, constant.RoleHost)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, constant.RoleHost, response.Role)
}
