// internal/config/database.go
package config

import (
	"fmt"
)

// DSN renders the keyword/value connection string the postgres driver
// expects. TimeZone is pinned to UTC so last_status_change timestamps
// compare consistently between the API and the worker.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
