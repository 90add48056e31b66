package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"staybook/shared/constant"
	"staybook/shared/failure"
	"staybook/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its message",
			err:      failure.Conflict("listing is already booked for these dates"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"listing is already booked for these dates"}`,
		},
		{
			name:     "unexpected error is masked",
			err:      errors.New("pq: relation \"reservations\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"` + constant.ResponseErrorInternal + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]int{"nights": 3})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"nights":3}}`, recorder.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.JSONEq(t, `{"message":"`+constant.ResponseErrorRequestLimitExceeded+`"}`, recorder.Body.String())
}
