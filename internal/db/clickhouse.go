package db

import (
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmehdipour/phone-canon/internal/config"
	"github.com/jmoiron/sqlx"
)

// NewClickHouse opens the reporting connection,
// e.g. clickhouse://default:@localhost:9000/phonecanon?dial_timeout=5s&compress=true
func NewClickHouse(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return open("clickhouse", cfg, 3*time.Second)
}
