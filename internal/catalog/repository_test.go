package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.RunMigrations())
	return repo
}

func TestGetProducts_AllAfterMigrations(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)

	assert.Len(t, products, 59)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Death By Chocolate", products[0].Name)
}

func TestGetProducts_Filters(t *testing.T) {
	repo := setupTestDB(t)

	tests := []struct {
		name   string
		filter domain.ProductFilter
		want   int
	}{
		{"all keyword", domain.ProductFilter{Category: "All"}, 59},
		{"brownies", domain.ProductFilter{Category: "Brownies"}, 5},
		{"scoops", domain.ProductFilter{Category: "Ice Cream Scoops"}, 16},
		{"sundaes", domain.ProductFilter{Category: "Sundaes"}, 11},
		{"milkshakes", domain.ProductFilter{Category: "Milkshakes"}, 13},
		{"thickshakes", domain.ProductFilter{Category: "Thickshakes"}, 14},
		{"unknown category", domain.ProductFilter{Category: "Waffles"}, 0},
		{"specials", domain.ProductFilter{Special: true}, 3},
		{"trending", domain.ProductFilter{Trending: true}, 3},
		{"special sundaes", domain.ProductFilter{Category: "Sundaes", Special: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.GetProducts(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, products, tt.want)
			for _, p := range products {
				if tt.filter.HasCategory() {
					assert.Equal(t, tt.filter.Category, p.Category)
				}
				if tt.filter.Special {
					assert.True(t, p.IsSpecial)
				}
			}
		})
	}
}

func TestGetProducts_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetProducts(ctx, domain.ProductFilter{})
	assert.ErrorContains(t, err, "failed to query products")
}

func TestGetProduct_ReturnsProduct(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p, err := repo.GetProduct(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, "Sizzling Brownie", p.Name)
	assert.Equal(t, "269", p.Price)
	assert.True(t, p.IsSpecial)
	require.NotNil(t, p.Badge)
	assert.Equal(t, "Popular", *p.Badge)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.RunMigrations())
}
