package config

import (
	"fmt"
	"strings"
)

type PostgresConfig struct {
	URL string
}

// GetPostgresConfig builds a lib/pq "key=value" connection string, which
// avoids URI escaping issues for special characters in passwords.
func GetPostgresConfig() *PostgresConfig {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	name := getEnv("DB_DATABASE", "podifyai")
	user := getEnv("DB_USERNAME", "podifyai")
	password := getEnv("DB_PASSWORD", "")
	sslMode := getEnv("DB_SSLMODE", "disable")

	url := fmt.Sprintf("host=%s port=%s dbname=%s user=%s sslmode=%s",
		host, port, name, user, sslMode)
	if password != "" {
		url += fmt.Sprintf(" password=%s", quoteDSNValue(password))
	}

	return &PostgresConfig{URL: url}
}

// quoteDSNValue single-quotes a key=value setting so passwords containing
// spaces or quotes stay intact.
func quoteDSNValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}
