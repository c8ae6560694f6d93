package postgres

import (
	"fmt"
)

// Config connection settings for the postgres datastore
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// String renders the config as a pgx connection URL
func (r *Config) String() string {
	db := r.Database
	if db == "" {
		db = "postgres"
	}

	sslmode := r.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", r.User, r.Password, r.Host, r.Port, db, sslmode)
}
