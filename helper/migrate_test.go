package helper_test

import (
	"io/fs"
	"staybook/config"
	"staybook/helper"
	"staybook/migrations"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UnknownAction(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	assert.EqualError(t, err, `unknown migration action "sideways"`)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	files, err := fs.Glob(migrations.Postgres, "postgres/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := map[string]bool{}, map[string]bool{}

	for _, file := range files {
		name := strings.TrimPrefix(file, "postgres/")

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", file)
		}
	}

	assert.Equal(t, ups, downs)
}
