package password_test

import (
	"staybook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost

	m.Run()
}

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "regular", plain: "s3cret-pass"},
		{name: "at the limit", plain: strings.Repeat("a", password.MaxLength)},
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", plain: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.plain)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hashed)
			assert.NoError(t, password.Verify(tt.plain, hashed))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	second, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "match", plain: "s3cret-pass", hash: hashed},
		{name: "mismatch", plain: "other-pass", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "s3cret-pass", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Error(t, password.Verify("s3cret-pass", "not-a-bcrypt-hash"))
}
