package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"staybook/config"
	"staybook/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}

	pg := cfg.DB.Postgres

	var extra url.Values
	if pg.MigrationTable != "" {
		extra = url.Values{"x-migrations-table": {pg.MigrationTable}}
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, pg.Write.DSN(pg.Prefix, extra))
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies action against the primary database. Having nothing to apply
// is not an error.
func Run(cfg *config.Config, action string) error {
	var step func(*migrate.Migrate) error

	switch action {
	case ActionUp:
		step = (*migrate.Migrate).Up
	case ActionDown:
		step = func(m *migrate.Migrate) error { return m.Steps(-1) }
	case ActionStepUp:
		step = func(m *migrate.Migrate) error { return m.Steps(1) }
	case ActionDrop:
		step = (*migrate.Migrate).Down
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp)
}
