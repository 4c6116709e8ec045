// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "licensing",
		Password: "secret",
		Database: "medialicense",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=licensing password=secret dbname=medialicense sslmode=require TimeZone=UTC",
		cfg.DSN(),
	)
}
