package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/facility-heatmap/internal/domain/dataset"
	"github.com/yanqian/facility-heatmap/internal/domain/selection"
	"github.com/yanqian/facility-heatmap/internal/infra/blob"
	"github.com/yanqian/facility-heatmap/internal/infra/config"
	"github.com/yanqian/facility-heatmap/internal/infra/csvsource"
	"github.com/yanqian/facility-heatmap/internal/infra/pgsource"
	"github.com/yanqian/facility-heatmap/internal/infra/selectionstore"
)

func provideDatasetConfig(cfg *config.Config) dataset.Config {
	return dataset.Config{RefreshInterval: cfg.Dataset.RefreshInterval}
}

func provideSelectionConfig(cfg *config.Config) selection.Config {
	return selection.Config{TTL: cfg.Selection.TTL}
}

func provideDatasetSource(cfg *config.Config, logger *slog.Logger) (dataset.Source, error) {
	ds := cfg.Dataset
	switch ds.Driver {
	case config.DriverHTTP:
		logger.Info("dataset served over http", "base_url", ds.BaseURL)
		return csvsource.NewSource(blob.NewHTTPStore(ds.BaseURL, ds.FetchTimeout), ds.ReadingsName, ds.DailyName, logger), nil
	case config.DriverObjectStore:
		store, err := blob.NewObjectStore(blob.ObjectStoreConfig{
			Endpoint:  ds.ObjectStore.Endpoint,
			AccessKey: ds.ObjectStore.AccessKey,
			SecretKey: ds.ObjectStore.SecretKey,
			Bucket:    ds.ObjectStore.Bucket,
			Region:    ds.ObjectStore.Region,
			Prefix:    ds.ObjectStore.Prefix,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init dataset object store: %w", err)
		}
		logger.Info("dataset served from object storage", "bucket", ds.ObjectStore.Bucket)
		return csvsource.NewSource(store, ds.ReadingsName, ds.DailyName, logger), nil
	case config.DriverPostgres:
		if source, ok := providePostgresSource(ds.Postgres, logger); ok {
			return source, nil
		}
		logger.Warn("falling back to csv files", "dir", ds.Dir)
	}
	return csvsource.NewSource(blob.NewFileStore(ds.Dir), ds.ReadingsName, ds.DailyName, logger), nil
}

func providePostgresSource(cfg config.PostgresConfig, logger *slog.Logger) (*pgsource.Source, bool) {
	dsn := strings.TrimSpace(cfg.DSN)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn", "error", err)
		return nil, false
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil, false
	}
	logger.Info("dataset postgres source enabled")
	return pgsource.NewSource(pool), true
}

func provideSelectionStore(cfg *config.Config, logger *slog.Logger) selection.Store {
	if cfg.Selection.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Selection.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return selectionstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return selectionstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("selection valkey store enabled", "addr", cfg.Selection.Valkey.Addr)
			return selectionstore.NewValkeyStore(client, cfg.Selection.Valkey.Prefix)
		}
	}
	return selectionstore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
