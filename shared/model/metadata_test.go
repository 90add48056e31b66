package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"staybook/shared/model"
)

func TestNewMetadata(t *testing.T) {
	meta := model.NewMetadata("u1")

	assert.Equal(t, "u1", meta.CreatedBy)
	assert.Equal(t, "u1", meta.ModifiedBy)
	assert.Equal(t, meta.CreatedAt, meta.ModifiedAt)
	assert.WithinDuration(t, time.Now(), meta.CreatedAt, time.Minute)
}

func TestMetadata_Touch(t *testing.T) {
	meta := model.NewMetadata("u1")
	meta.CreatedAt = meta.CreatedAt.Add(-time.Hour)

	meta.Touch("admin")

	assert.Equal(t, "u1", meta.CreatedBy)
	assert.Equal(t, "admin", meta.ModifiedBy)
	assert.True(t, meta.ModifiedAt.After(meta.CreatedAt))
}
