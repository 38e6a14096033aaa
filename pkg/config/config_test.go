package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, 3, cfg.DB.TxMaxRetries)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 30, cfg.Ledger.ExpiryHorizonDays)
	assert.Equal(t, "America/Sao_Paulo", cfg.Ledger.Timezone)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("DB_TX_MAX_RETRIES", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("LEDGER_EXPIRY_HORIZON_DAYS", "45")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 5, cfg.DB.TxMaxRetries)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 45, cfg.Ledger.ExpiryHorizonDays)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_Errores(t *testing.T) {
	t.Run("sin secreto JWT", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		assert.Error(t, err)
	})
	t.Run("driver desconocido", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := config.Load()
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/estoque?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLedgerConfig_LocationInvalidaCaeAUTC(t *testing.T) {
	assert.Equal(t, time.UTC, config.LedgerConfig{Timezone: "Marte/Olympus"}.Location())
}
