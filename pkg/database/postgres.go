package database

import (
	"context"
	"fmt"
	"time"

	"clubops/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

// DBTX is the query surface shared by the pool and an open transaction,
// so repositories run unchanged inside or outside a unit of work.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgxIface is satisfied by *pgxpool.Pool and by pgxmock in tests.
type PgxIface interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

const (
	minConns    = 2
	pingTimeout = 3 * time.Second
)

// ConnString builds the key/value DSN pgx understands.
func ConnString(config utils.DatabaseConfig) string {
	return fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		config.User, config.Password, config.Name, config.Host, config.Port)
}

// InitDB opens the pool and pings it. In debug every statement is traced
// through logger.
func InitDB(ctx context.Context, config utils.DatabaseConfig, logger *zap.Logger, debug bool) (PgxIface, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(config))
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	if debug {
		poolConfig.ConnConfig.Tracer = QueryTracer(logger)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return pool, nil
}

// QueryTracer adapts pgx trace output to zap at debug level. Query
// arguments are dropped because they carry password hashes.
func QueryTracer(logger *zap.Logger) *tracelog.TraceLog {
	log := logger.With(zap.String("component", "pgx"))
	return &tracelog.TraceLog{
		LogLevel: tracelog.LogLevelDebug,
		Logger: tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
			fields := make([]zap.Field, 0, len(data))
			for k, v := range data {
				if k == "args" {
					continue
				}
				fields = append(fields, zap.Any(k, v))
			}
			if level <= tracelog.LogLevelError && level != tracelog.LogLevelNone {
				log.Warn(msg, fields...)
				return
			}
			log.Debug(msg, fields...)
		}),
	}
}
