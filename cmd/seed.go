package cmd

import (
	"fmt"
	"time"

	"github.com/jmehdipour/phone-canon/internal/db"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo API clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		sqlDB, err := db.NewMySQL(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		clients := demoClients()
		if err := seedClients(sqlDB, clients); err != nil {
			return err
		}

		log.Info("seed completed", zap.Int("clients", len(clients)))
		return nil
	},
}

func demoClients() []model.Client {
	return []model.Client{
		{Name: "Acme CRM", APIKey: "11111111111111111111111111111111", Status: "active", RateLimitRPS: intptr(20)},
		{Name: "KL Call Center", APIKey: "22222222222222222222222222222222", Status: "active", RateLimitRPS: intptr(100)},
		{Name: "Beta Testers", APIKey: "33333333333333333333333333333333", Status: "active", RateLimitRPS: intptr(5)},
		{Name: "Suspended Inc", APIKey: "44444444444444444444444444444444", Status: "suspended"},
	}
}

// seedClients upserts clients by api_key (idempotent).
func seedClients(dbx *sqlx.DB, clients []model.Client) error {
	const q = `
INSERT INTO clients
    (name, api_key, status, rate_limit_rps, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    name           = VALUES(name),
    status         = VALUES(status),
    rate_limit_rps = VALUES(rate_limit_rps),
    updated_at     = VALUES(updated_at)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, c := range clients {
		if _, err := tx.Exec(q, c.Name, c.APIKey, c.Status, c.RateLimitRPS, now, now); err != nil {
			return fmt.Errorf("insert client %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clients: %w", err)
	}
	return nil
}

func intptr(i int) *int { return &i }
