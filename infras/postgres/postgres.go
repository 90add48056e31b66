package postgres

//nolint:revive
import (
	"fmt"
	"staybook/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds the read replica pool and the primary pool. Repositories
// send queries to Read and every mutation to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  mustConnect(cfg, "read", pg.Read),
		Write: mustConnect(cfg, "write", pg.Write),
	}
}

func mustConnect(cfg *config.Config, role string, node config.PostgresNode) *sqlx.DB {
	db, err := connect(cfg, role, node)
	if err != nil {
		log.Fatal().Err(err).Str("role", role).Str("host", node.Host).Msg("database unreachable")
	}

	return db
}

// connect retries sqlx.Connect up to MaxRetry times, at least once.
func connect(cfg *config.Config, role string, node config.PostgresNode) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	dsn := node.DSN(pg.Prefix, nil)
	attempts := max(pg.MaxRetry, 1)
	wait := time.Duration(pg.RetryWaitTime) * time.Second

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)

			log.Info().Str("role", role).Str("host", node.Host).Str("db", pg.Prefix+node.Name).Msg("connected to database")

			return db, nil
		}

		lastErr = err

		log.Warn().Err(err).Str("role", role).Int("attempt", attempt).Int("of", attempts).Msg("database connection failed")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("connecting to %s database after %d attempts: %w", role, attempts, lastErr)
}
