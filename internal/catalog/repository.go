package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrProductNotFound = errors.New("product not found")

type RepoInterface interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) RunMigrations() error {
	return storage.MigrateSQLite(r.db, migrations, "catalog_schema_migrations")
}

const productColumns = `id, name, description, category, price, image_url, flavor_notes,
		is_special, is_trending, is_favorite, badge, created_at`

func (r *Repository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.HasCategory() {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Special {
		where = append(where, "is_special = 1")
	}
	if filter.Trending {
		where = append(where, "is_trending = 1")
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = ?"

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	p := &domain.Product{}
	var flavorNotes, badge sql.NullString
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&flavorNotes,
		&p.IsSpecial,
		&p.IsTrending,
		&p.IsFavorite,
		&badge,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	if flavorNotes.Valid {
		p.FlavorNotes = &flavorNotes.String
	}
	if badge.Valid {
		p.Badge = &badge.String
	}
	return p, nil
}
