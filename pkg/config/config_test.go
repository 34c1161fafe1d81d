package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("APP_NAME", "bate-carga-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "bate-carga-test", cfg.App.Name)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver, "vacío cae en memoria")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "Observacao", cfg.Export.NoteLabel)
	assert.Positive(t, cfg.Ingest.Workers)
	assert.False(t, cfg.JWT.Enabled())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("SESSION_STORE", "Badger")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INGEST_WORKERS", "3")
	t.Setenv("EXPORT_NOTE_LABEL", "Romaneio")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreBadger, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Ingest.Workers)
	assert.Equal(t, "Romaneio", cfg.Export.NoteLabel)
	assert.True(t, cfg.JWT.Enabled())
}

func TestLoad_StoreInvalido(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	_, err := config.Load()
	assert.ErrorContains(t, err, "SESSION_STORE")
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss#1", DBName: "bate", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%231@db:5432/bate?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
