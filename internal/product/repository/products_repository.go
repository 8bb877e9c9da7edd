package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sabores/internal/domain"
	"sabores/internal/infrastructure/database"
)

var (
	ErrCatalogNotConfigured = errors.New("product catalog store not configured")
	ErrProductNotFound      = errors.New("product not found")
)

const productColumns = `id, name, description, ingredients, price, show_price, images,
	is_daily_product, is_custom_product, created_at, updated_at`

const createProductsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		ingredients TEXT,
		price DOUBLE PRECISION,
		show_price BOOLEAN NOT NULL DEFAULT FALSE,
		images TEXT,
		is_daily_product BOOLEAN NOT NULL DEFAULT FALSE,
		is_custom_product BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`

// SQLRepository keeps the catalog in a relational table. The same code
// serves the remote store and the local SQLite catalog; source names which
// one it is. A nil db disables the repository.
type SQLRepository struct {
	db     *sql.DB
	driver string
	source string
}

func NewSQLRepository(db *sql.DB, driver, source string) *SQLRepository {
	return &SQLRepository{db: db, driver: driver, source: source}
}

func (r *SQLRepository) Source() string {
	return r.source
}

// EnsureSchema creates the products table when it is missing.
func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return ErrCatalogNotConfigured
	}
	if _, err := r.db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindAll(ctx context.Context, dailyOnly bool) ([]domain.Product, error) {
	if r.db == nil {
		return nil, ErrCatalogNotConfigured
	}

	query := `SELECT ` + productColumns + ` FROM products`
	var args []interface{}
	if dailyOnly {
		query += ` WHERE is_daily_product = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, database.Rebind(r.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if r.db == nil {
		return nil, ErrCatalogNotConfigured
	}

	query := database.Rebind(r.driver, `SELECT `+productColumns+` FROM products WHERE id = ?`)
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLRepository) Create(ctx context.Context, p domain.Product) error {
	if r.db == nil {
		return ErrCatalogNotConfigured
	}

	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	query := database.Rebind(r.driver, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Ingredients, nullFloat(p.Price), p.ShowPrice, images,
		p.IsDailyProduct, p.IsCustomProduct, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, p domain.Product) error {
	if r.db == nil {
		return ErrCatalogNotConfigured
	}

	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	query := database.Rebind(r.driver, `
		UPDATE products
		SET name = ?, description = ?, ingredients = ?, price = ?, show_price = ?, images = ?,
		    is_daily_product = ?, is_custom_product = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Ingredients, nullFloat(p.Price), p.ShowPrice, images,
		p.IsDailyProduct, p.IsCustomProduct, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return requireAffected(result)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrCatalogNotConfigured
	}

	result, err := r.db.ExecContext(ctx, database.Rebind(r.driver, `DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return requireAffected(result)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (*domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
		ingredients sql.NullString
		price       sql.NullFloat64
		images      sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &description, &ingredients, &price, &p.ShowPrice, &images,
		&p.IsDailyProduct, &p.IsCustomProduct, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}

	p.Description = description.String
	p.Ingredients = ingredients.String
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	p.Images = []string{}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &p.Images); err != nil {
			return nil, fmt.Errorf("decoding images of product %s: %w", p.ID, err)
		}
	}

	return &p, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encoding images: %w", err)
	}
	return string(data), nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
