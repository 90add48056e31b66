package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/shared/failure"
	"staybook/shared/validator"
)

type listingBody struct {
	Title         string  `json:"title"           validate:"required,max=10"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Role          string  `json:"role"            validate:"omitempty,oneof=GUEST HOST"`
	Email         string  `json:"email"           validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"title":"Loft","price_per_night":80}`},
		{name: "malformed json", body: `{"title":`, wantErr: "failed to decode request body"},
		{name: "missing title", body: `{"price_per_night":80}`, wantErr: "title is required"},
		{name: "non positive price", body: `{"title":"Loft","price_per_night":0}`, wantErr: "price_per_night is required"},
		{name: "title too long", body: `{"title":"Seaside apartment","price_per_night":80}`, wantErr: "title must be at most 10"},
		{name: "unknown role", body: `{"title":"Loft","price_per_night":80,"role":"ADMIN"}`, wantErr: "role must be one of GUEST HOST"},
		{name: "bad email", body: `{"title":"Loft","price_per_night":80,"email":"nope"}`, wantErr: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body listingBody

			err := validator.Validate(strings.NewReader(tt.body), &body)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

type photoBody struct {
	Photo *multipart.FileHeader `json:"photo" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestValidateStruct_Photo(t *testing.T) {
	photo := func(contentType string, size int64) *multipart.FileHeader {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", contentType)

		return &multipart.FileHeader{Filename: "room.png", Header: header, Size: size}
	}

	tests := []struct {
		name    string
		body    photoBody
		wantErr string
	}{
		{name: "accepted", body: photoBody{Photo: photo("image/png", 512)}},
		{name: "missing", body: photoBody{}, wantErr: "photo is required"},
		{name: "wrong type", body: photoBody{Photo: photo("application/pdf", 512)}, wantErr: "photo must be one of image/png image/jpeg"},
		{name: "too large", body: photoBody{Photo: photo("image/jpeg", 2<<20)}, wantErr: "photo must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.body)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("guest@staybook.io", "required,email"))
	assert.EqualError(t, validator.ValidateVar("", "required"), " is required")
}
