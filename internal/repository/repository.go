// Package repository holds the storage adapters behind domain.ProductRepository.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"productapi/internal/config"
	"productapi/internal/domain"
)

// New создаёт репозиторий товаров по cfg.Driver. Возвращаемая функция
// закрывает пул соединений; для memory ничего не делает.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (domain.ProductRepository, func() error, error) {
	if cfg.Driver == config.DriverMemory {
		return NewMemoryStore(), func() error { return nil }, nil
	}
	db, err := OpenDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			_ = CloseDB(db)
			return nil, nil, fmt.Errorf("failed to migrate products table: %w", err)
		}
	}
	return NewGormStore(db), func() error { return CloseDB(db) }, nil
}
