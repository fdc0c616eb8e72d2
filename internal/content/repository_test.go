package content

import (
	"context"
	"testing"

	"github.com/fjod/frocone/internal/catalog"
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

func TestListSeededContent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	testimonials, err := repo.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 2)
	assert.Equal(t, "Priya Sharma", testimonials[0].CustomerName)
	assert.Equal(t, 5, testimonials[0].Rating)
	assert.True(t, testimonials[0].IsVerified)
	assert.Nil(t, testimonials[0].Avatar)

	blogs, err := repo.ListBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Frocone Team", blogs[0].Author)

	faqs, err := repo.ListFaqs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Dietary", faqs[0].Category)

	fests, err := repo.ListFests(ctx)
	require.NoError(t, err)
	require.Len(t, fests, 1)
	require.NotNil(t, fests[0].ContactPerson)
	assert.Equal(t, "Student Council", *fests[0].ContactPerson)
}

func TestCreateBlog(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	blog, err := repo.CreateBlog(ctx, domain.CreateBlogRequest{
		Title:    "Summer Menu",
		Content:  "Six new sundaes.",
		Author:   "Frocone Team",
		ImageURL: "summer.jpg",
		Excerpt:  "Six new sundaes.",
		Category: "Announcements",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), blog.ID)
	assert.False(t, blog.CreatedAt.IsZero())

	blogs, err := repo.ListBlogs(ctx)
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestCreateFaqAndFest(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	faq, err := repo.CreateFaq(ctx, domain.CreateFaqRequest{Question: "Do you deliver?", Answer: "Yes.", Category: "Orders"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), faq.ID)

	fest, err := repo.CreateFest(ctx, domain.CreateFestRequest{
		Name:        "Pearl",
		College:     "BITS Pilani, Hyderabad",
		Description: "Cultural fest.",
		Date:        "March 2025",
		ImageURL:    "pearl.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), fest.ID)
	assert.Nil(t, fest.ContactPerson)

	fests, err := repo.ListFests(ctx)
	require.NoError(t, err)
	require.Len(t, fests, 2)
	assert.Nil(t, fests[1].ContactPerson)
}

func TestSharesDatabaseWithCatalog(t *testing.T) {
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, catalog.NewRepository(db).RunMigrations())
	require.NoError(t, NewRepository(db).RunMigrations())

	faqs, err := NewRepository(db).ListFaqs(context.Background())
	require.NoError(t, err)
	assert.Len(t, faqs, 1)
}

func TestListCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListBlogs(ctx)
	assert.ErrorContains(t, err, "failed to query blogs")
}
