package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compras-io/compras/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/compras")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")

	cfg := config.Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "compras_events", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "orders")
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/compras")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "ordenes")

	cfg := config.Load()
	assert.Equal(t, "orders", cfg.ServiceName)
	assert.Equal(t, 9001, cfg.ServerPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ordenes", cfg.KafkaTopic)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/compras")

	cfg := config.Load()
	assert.Equal(t, 8080, cfg.ServerPort)
}
