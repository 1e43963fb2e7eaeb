package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB держит пул соединений к базе статус-эффектов.
type DB struct {
	pool *pgxpool.Pool
}

// New подключается к PostgreSQL и проверяет соединение.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close закрывает пул.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool возвращает пул для репозиториев.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}
