package db

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmehdipour/phone-canon/internal/config"
	"github.com/jmoiron/sqlx"
)

// NewMySQL opens the MySQL pool holding clients, contacts and the outbox.
// The DSN needs parseTime=true; migrate also needs multiStatements=true.
func NewMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return open("mysql", cfg, 5*time.Second)
}
