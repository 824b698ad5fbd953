package dbkeeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/postgres"
	_ "github.com/golang-migrate/migrate/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/drstein77/shopcart/internal/catalog"
	"github.com/drstein77/shopcart/internal/models"
)

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// DBKeeper stores the catalog in Postgres, one table per item kind.
type DBKeeper struct {
	pool *pgxpool.Pool
	log  Log
}

var tables = map[models.Kind]string{
	models.Product: "products",
	models.Service: "services",
}

func NewDBKeeper(ctx context.Context, dsn func() string, migrationsPath func() string, log Log) (*DBKeeper, error) {
	addr := dsn()
	if addr == "" {
		return nil, errors.New("database dsn is empty")
	}

	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	if err := migrateUp(config.ConnConfig, migrationsPath()); err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	log.Info("Connected!")

	return &DBKeeper{
		pool: pool,
		log:  log,
	}, nil
}

func migrateUp(connConfig *pgx.ConnConfig, path string) error {
	sqlDB := stdlib.OpenDB(*connConfig)
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error getting migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error while performing migration: %w", err)
	}
	return nil
}

// SeedItems inserts the given entries when the catalog tables are empty.
// It reports whether anything was inserted. Safe to call from several
// processes at once: the tables are locked for the check and the insert.
func (kp *DBKeeper) SeedItems(ctx context.Context, products, services []catalog.SeedEntry) (seeded bool, err error) {
	if kp.pool == nil {
		return false, fmt.Errorf("database connection pool is nil")
	}

	tx, err := kp.pool.Begin(ctx)
	if err != nil {
		kp.log.Error("Failed to begin transaction", zap.Error(err))
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr != pgx.ErrTxClosed {
				kp.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
			}
		}
	}()

	// Concurrent seeders wait here so only the first one sees empty tables.
	if _, err = tx.Exec(ctx, `LOCK TABLE products, services IN EXCLUSIVE MODE`); err != nil {
		err = fmt.Errorf("failed to lock catalog tables: %w", err)
		return false, err
	}

	var count int
	if err = tx.QueryRow(ctx, `SELECT (SELECT COUNT(*) FROM products) + (SELECT COUNT(*) FROM services)`).Scan(&count); err != nil {
		err = fmt.Errorf("failed to count catalog rows: %w", err)
		return false, err
	}
	if count > 0 {
		err = tx.Commit(ctx)
		return false, err
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`INSERT INTO products (name, price) VALUES ($1, $2)`, p.Name, p.Price)
	}
	for _, s := range services {
		batch.Queue(`INSERT INTO services (name, price) VALUES ($1, $2)`, s.Name, s.Price)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < len(products)+len(services); i++ {
		if _, execErr := br.Exec(); execErr != nil {
			br.Close()
			err = fmt.Errorf("failed to execute batch query: %w", execErr)
			return false, err
		}
	}
	if closeErr := br.Close(); closeErr != nil {
		err = fmt.Errorf("failed to close batch results: %w", closeErr)
		return false, err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		return false, err
	}

	kp.log.Info("Catalog seeded", zap.Int("products", len(products)), zap.Int("services", len(services)))
	return true, nil
}

// LoadItems reads all products then all services, each ordered by id.
func (kp *DBKeeper) LoadItems(ctx context.Context) ([]models.Item, error) {
	if kp.pool == nil {
		return nil, fmt.Errorf("database connection pool is nil")
	}

	var items []models.Item
	for _, kind := range []models.Kind{models.Product, models.Service} {
		loaded, err := kp.loadKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		items = append(items, loaded...)
	}

	kp.log.Info("Successfully retrieved catalog", zap.Int("count", len(items)))
	return items, nil
}

func (kp *DBKeeper) loadKind(ctx context.Context, kind models.Kind) ([]models.Item, error) {
	query := fmt.Sprintf(`SELECT id, name, price FROM %s ORDER BY id`, tables[kind])

	rows, err := kp.pool.Query(ctx, query)
	if err != nil {
		kp.log.Error("Failed to execute query", zap.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item := models.Item{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			kp.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		kp.log.Error("Error occurred during rows iteration", zap.Error(rows.Err()))
		return nil, fmt.Errorf("error during rows iteration: %w", rows.Err())
	}

	return items, nil
}

func (kp *DBKeeper) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kp.pool.Ping(ctx); err != nil {
		kp.log.Error("Database ping failed", zap.Error(err))
		return false
	}

	return true
}

func (kp *DBKeeper) Close() bool {
	if kp.pool != nil {
		kp.pool.Close()
		kp.log.Info("Database connection pool closed")
		return true
	}
	kp.log.Info("Attempted to close a nil database connection pool")
	return false
}
