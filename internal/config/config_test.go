package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"AWS_REGION", "APPOINTMENTS_REQUEST_TABLE", "EVENT_BUS_NAME", "SUPPORTED_COUNTRIES",
		"COUNTRY_ISO", "DB_MAX_OPEN_CONNS", "METRICS_NAMESPACE", "RUN_LOCAL", "PORT", "SNS_TOPIC_ARN"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "appointments-requests-dev", cfg.RequestsTable)
	assert.Equal(t, "event_bus_appointments", cfg.EventBusName)
	assert.Equal(t, "appointments.source", cfg.EventSource)
	assert.Equal(t, []string{"PE", "CL"}, cfg.Countries)
	assert.Equal(t, 10, cfg.DBPool.MaxOpenConns)
	assert.Equal(t, 300*time.Second, cfg.DBPool.ConnMaxLifetime)
	assert.False(t, cfg.RunLocal)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.TopicARN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SUPPORTED_COUNTRIES", "pe, cl ,mx")
	t.Setenv("COUNTRY_ISO", " cl")
	t.Setenv("COUNTRY_QUEUE_URL_MX", "http://localhost:4566/000000000000/mx")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("RUN_LOCAL", "true")

	cfg := Load()

	assert.Equal(t, []string{"PE", "CL", "MX"}, cfg.Countries)
	assert.Equal(t, "CL", cfg.CountryISO)
	assert.Equal(t, "http://localhost:4566/000000000000/mx", cfg.CountryQueueURLs["MX"])
	assert.Equal(t, 10, cfg.DBPool.MaxOpenConns)
	assert.True(t, cfg.RunLocal)
}

func TestCountryDB(t *testing.T) {
	t.Setenv("DB_HOST_CL", "cl-db.internal")
	t.Setenv("DB_NAME_CL", "appointments_cl")
	t.Setenv("DB_PORT_CL", "")

	db := Load().CountryDB("cl")

	assert.Equal(t, "cl-db.internal", db.Host)
	assert.Equal(t, "3306", db.Port)
	assert.Equal(t, "root", db.User)
	assert.Equal(t, "appointments_cl", db.Name)
}
