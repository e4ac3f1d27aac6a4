package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/database"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/logger"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/queue"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/repository"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage/memory"
	"go.uber.org/zap"
)

// localPhotoURL is where the router serves locally stored photos
const localPhotoURL = "/photos/"

// collaborators holds the four storage backends selected by configuration
type collaborators struct {
	records storage.CustomerStore
	photos  storage.PhotoStore
	queue   storage.AuditQueue
	archive storage.FileArchive

	// checks are reported on /health/ready
	checks map[string]storage.Pinger
	// photoDir is non-empty when photos live on the local filesystem
	photoDir string
	closers  []io.Closer
}

func (c *collaborators) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i].Close()
	}
}

func newCollaborators(ctx context.Context, cfg *config.Config, log *zap.Logger) (*collaborators, error) {
	c := &collaborators{checks: map[string]storage.Pinger{}}
	account := storage.AzureAccount{
		ConnectionString: cfg.Storage.ConnectionString,
		AccountName:      cfg.Storage.AccountName,
	}

	steps := []func() error{
		func() error { return c.openRecords(ctx, cfg, account, log) },
		func() error { return c.openPhotos(ctx, cfg, account, log) },
		func() error { return c.openQueue(ctx, cfg, account, log) },
		func() error { return c.openArchive(ctx, cfg, account, log) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			c.Close()
			return nil, err
		}
	}

	logger.WithStorage(log, &cfg.Storage).Info("Storage initialized")
	return c, nil
}

func (c *collaborators) openRecords(ctx context.Context, cfg *config.Config, account storage.AzureAccount, log *zap.Logger) error {
	switch cfg.Storage.Records {
	case config.BackendAzure:
		store, err := storage.NewAzureTableStore(ctx, account, cfg.Storage.TableName, log)
		if err != nil {
			return fmt.Errorf("failed to initialize table storage: %w", err)
		}
		c.records = store
	case config.BackendDatabase:
		db, err := database.NewDatabase(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.Driver == "sqlite" {
			// Postgres schemas are managed by cmd/migrate
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB)
		}
		repo := repository.NewCustomerRepository(db)
		c.records = repo
		c.checks["database"] = repo
		log.Info("Database record store initialized", zap.String("driver", cfg.Database.Driver))
	case config.BackendMemory:
		store := memory.NewCustomerStore(nil)
		c.records = store
	default:
		return fmt.Errorf("unsupported records backend %q", cfg.Storage.Records)
	}
	return nil
}

func (c *collaborators) openPhotos(ctx context.Context, cfg *config.Config, account storage.AzureAccount, log *zap.Logger) error {
	switch cfg.Storage.Photos {
	case config.BackendAzure:
		store, err := storage.NewAzureBlobPhotoStore(ctx, account, cfg.Storage.BlobContainer, cfg.Storage.PhotoSASExpiry(), log)
		if err != nil {
			return fmt.Errorf("failed to initialize blob storage: %w", err)
		}
		c.photos = store
	case config.BackendS3:
		store, err := storage.NewS3PhotoStore(ctx, storage.S3Options{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			PresignExpiry: cfg.S3.PresignExpiry(),
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		c.photos = store
	case config.BackendLocal:
		store, err := storage.NewLocalPhotoStore(filepath.Join(cfg.Storage.LocalBasePath, "photos"), localPhotoURL)
		if err != nil {
			return err
		}
		c.photos = store
		c.photoDir = store.Dir()
	case config.BackendMemory:
		c.photos = memory.NewPhotoStore(nil)
	default:
		return fmt.Errorf("unsupported photos backend %q", cfg.Storage.Photos)
	}
	return nil
}

func (c *collaborators) openQueue(ctx context.Context, cfg *config.Config, account storage.AzureAccount, log *zap.Logger) error {
	switch cfg.Storage.Queue {
	case config.BackendAzure:
		q, err := storage.NewAzureAuditQueue(ctx, account, cfg.Storage.QueueName, cfg.Storage.QueuePeekLimit, log)
		if err != nil {
			return fmt.Errorf("failed to initialize queue storage: %w", err)
		}
		c.queue = q
	case config.BackendAMQP:
		q, err := queue.NewAMQPAuditQueue(cfg.AMQP.URL, cfg.AMQP.QueueName, cfg.Storage.QueuePeekLimit, log)
		if err != nil {
			return fmt.Errorf("failed to initialize amqp queue: %w", err)
		}
		c.queue = q
		c.checks["queue"] = q
		c.closers = append(c.closers, q)
	case config.BackendMemory:
		c.queue = memory.NewAuditQueue(nil)
	default:
		return fmt.Errorf("unsupported queue backend %q", cfg.Storage.Queue)
	}
	return nil
}

func (c *collaborators) openArchive(ctx context.Context, cfg *config.Config, account storage.AzureAccount, log *zap.Logger) error {
	switch cfg.Storage.Archive {
	case config.BackendAzure:
		archive, err := storage.NewAzureFileArchive(ctx, account, cfg.Storage.ShareName, cfg.Storage.ShareDirectory, log)
		if err != nil {
			return fmt.Errorf("failed to initialize file share: %w", err)
		}
		c.archive = archive
	case config.BackendLocal:
		archive, err := storage.NewLocalFileArchive(filepath.Join(cfg.Storage.LocalBasePath, "logs"))
		if err != nil {
			return err
		}
		c.archive = archive
	case config.BackendMemory:
		c.archive = memory.NewFileArchive(nil)
	default:
		return fmt.Errorf("unsupported archive backend %q", cfg.Storage.Archive)
	}
	return nil
}
