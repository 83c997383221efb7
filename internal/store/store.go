package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bakery-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Sentinel errors surfaced by the store. Callers branch with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id             BIGINT PRIMARY KEY,
	name           TEXT NOT NULL,
	name_en        TEXT NOT NULL,
	category       TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	description_en TEXT NOT NULL DEFAULT '',
	price          BIGINT NOT NULL CHECK (price >= 0),
	image          TEXT NOT NULL DEFAULT '',
	available      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
	id              BIGSERIAL PRIMARY KEY,
	order_number    TEXT NOT NULL UNIQUE,
	items           JSONB NOT NULL,
	customer        JSONB NOT NULL,
	subtotal        BIGINT NOT NULL CHECK (subtotal >= 0),
	shipping_fee    BIGINT NOT NULL CHECK (shipping_fee >= 0),
	total           BIGINT NOT NULL CHECK (total >= 0),
	status          TEXT NOT NULL DEFAULT 'pending',
	tracking_number TEXT NOT NULL DEFAULT '',
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	shipped_at      TIMESTAMPTZ,
	delivered_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC);
`

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store. The connection is lazy: an
// unreachable database is reported through the returned error but the
// handle is still usable and recovers once the database comes back, so the
// process can keep serving static catalog data in the meantime.
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &Store{db: db}
	if err := db.Ping(); err != nil {
		return store, fmt.Errorf("database unreachable: %w", err)
	}
	return store, nil
}

// InitSchema creates the tables if they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetProductByID retrieves a product by its catalog id.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves products, optionally restricted to one category.
func (s *Store) GetProducts(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	if category != "" {
		err := s.db.SelectContext(ctx, &products,
			"SELECT * FROM products WHERE category = $1 ORDER BY id", category)
		return products, err
	}
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// GetProductsByIDs retrieves multiple products by catalog ids.
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// SeedCatalog inserts products that are not present yet. Existing rows are
// left untouched so administrative edits survive restarts.
func (s *Store) SeedCatalog(ctx context.Context, products []models.Product) error {
	query := `
		INSERT INTO products (id, name, name_en, category, description, description_en, price, image, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`

	for _, p := range products {
		if _, err := s.db.ExecContext(ctx, query,
			p.ID, p.Name, p.NameEn, p.Category, p.Description, p.DescriptionEn,
			p.Price, p.Image, p.Available); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
	}
	return nil
}
