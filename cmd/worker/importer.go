package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/phone-canon/internal/config"
	"github.com/jmehdipour/phone-canon/internal/db"
	"github.com/jmehdipour/phone-canon/internal/kafka"
	"github.com/jmehdipour/phone-canon/internal/logger"
	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/repository"
	"github.com/jmehdipour/phone-canon/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultImporterGroup = "phonecanon-importer"

var importerCmd = &cobra.Command{
	Use:   "importer",
	Short: "Consume raw contacts from Kafka, normalize and store them",
	RunE:  runImporter,
}

func runImporter(cmd *cobra.Command, args []string) error {
	// 1) config + logger
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) storage
	dbx, err := db.NewMySQL(cfg.MySQL)
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	defer dbx.Close()

	// 3) kafka consumer
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = defaultImporterGroup
	}
	consumer := kafka.NewConsumerFromConfig(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.ImportTopic,
		GroupID:        groupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	defer consumer.Close()

	w := worker.NewImporter(
		consumer,
		repository.NewContactsRepository(dbx),
		log.Named("importer"),
		cfg.Phone.DefaultCountryCode,
	)

	// tune knobs
	if cfg.Importer.WorkerCount > 0 {
		w.Workers = cfg.Importer.WorkerCount
	}
	if cfg.Importer.BatchSize > 0 {
		w.BatchSize = cfg.Importer.BatchSize
	}
	if cfg.Importer.BatchWait > 0 {
		w.BatchWait = cfg.Importer.BatchWait
	}

	// 4) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("importer started",
		zap.String("topic", cfg.Kafka.ImportTopic),
		zap.String("group", groupID),
		zap.Int("workers", w.Workers),
		zap.Int("batch_size", w.BatchSize),
		zap.Duration("batch_wait", w.BatchWait),
	)

	return w.Run(ctx)
}
