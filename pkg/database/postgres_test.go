package database

import (
	"context"
	"testing"

	"clubops/pkg/utils"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConnString(t *testing.T) {
	dsn := ConnString(utils.DatabaseConfig{
		Host: "db", Port: "5433", Name: "clubops", User: "club", Password: "pw",
	})
	assert.Equal(t, "user=club password=pw dbname=clubops sslmode=disable host=db port=5433", dsn)
}

func TestQueryTracerDropsArgs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := QueryTracer(zap.New(core))

	tracer.Logger.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT 1 FROM users WHERE email = $1",
		"args": []any{"admin@eliteclub.com"},
	})
	tracer.Logger.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"err": "boom"})

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, first.Level)
	assert.Contains(t, first.ContextMap(), "sql")
	assert.NotContains(t, first.ContextMap(), "args")
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}
