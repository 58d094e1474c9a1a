package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"query-gateway/config"
	"query-gateway/database"
	"query-gateway/shop"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warn"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("loud"))
}

func TestRun_InvalidConfiguration(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "info", DBDriver: "oracle"}

	err := run(context.Background(), cfg, shop.DefaultCustomer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRun_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{
		Env:              "test",
		LogLevel:         "error",
		DBDriver:         database.DriverSQLite,
		DBHost:           "127.0.0.1",
		DBPort:           3306,
		DBName:           filepath.Join(t.TempDir(), "missing", "shop.db"),
		DBConnectTimeout: time.Second,
	}

	err := run(context.Background(), cfg, shop.DefaultCustomer())
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrConnection)
	assert.Contains(t, err.Error(), "connection failed: ")
}
