package main

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/autoposter/internal/config"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/nikolayk812/autoposter/internal/repository"
	"github.com/nikolayk812/autoposter/migrations"
	"github.com/redis/go-redis/v9"
)

func openSlots(ctx context.Context, cfg config.StorageConfig) (port.SlotStorage, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemorySlots(), noop, nil

	case config.DriverFile:
		slots, err := repository.NewFileSlots(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFileSlots: %w", err)
		}
		return slots, noop, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedisSlots(client), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresSlots(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage driver[%s] is not supported", cfg.Driver)
	}
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}

	for _, name := range files {
		script, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("fs.ReadFile: %w", err)
		}

		if _, err := pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("migration[%s]: %w", name, err)
		}
	}

	return nil
}
