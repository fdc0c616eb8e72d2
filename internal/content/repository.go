// Package content serves the shop's editorial pages: testimonials, blog
// posts, FAQs and college fests.
package content

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) RunMigrations() error {
	return storage.MigrateSQLite(r.db, migrations, "content_schema_migrations")
}

func (r *Repository) ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	query := `SELECT id, customer_name, rating, comment, avatar, is_verified, created_at
		FROM testimonials ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Testimonial, 0)
	for rows.Next() {
		t := &domain.Testimonial{}
		var avatar sql.NullString
		if err := rows.Scan(&t.ID, &t.CustomerName, &t.Rating, &t.Comment, &avatar, &t.IsVerified, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		if avatar.Valid {
			t.Avatar = &avatar.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) ListBlogs(ctx context.Context) ([]*domain.Blog, error) {
	query := `SELECT id, title, content, author, image_url, excerpt, category, created_at
		FROM blogs ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Blog, 0)
	for rows.Next() {
		b := &domain.Blog{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.ImageURL, &b.Excerpt, &b.Category, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) CreateBlog(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error) {
	query := `INSERT INTO blogs (title, content, author, image_url, excerpt, category)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, req.Title, req.Content, req.Author, req.ImageURL, req.Excerpt, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to insert blog: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read blog id: %w", err)
	}

	b := &domain.Blog{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, title, content, author, image_url, excerpt, category, created_at FROM blogs WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.ImageURL, &b.Excerpt, &b.Category, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog: %w", err)
	}
	return b, nil
}

func (r *Repository) ListFaqs(ctx context.Context) ([]*domain.Faq, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, question, answer, category FROM faqs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Faq, 0)
	for rows.Next() {
		f := &domain.Faq{}
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) CreateFaq(ctx context.Context, req domain.CreateFaqRequest) (*domain.Faq, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO faqs (question, answer, category) VALUES (?, ?, ?)`,
		req.Question, req.Answer, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to insert faq: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read faq id: %w", err)
	}
	return &domain.Faq{ID: id, Question: req.Question, Answer: req.Answer, Category: req.Category}, nil
}

func (r *Repository) ListFests(ctx context.Context) ([]*domain.Fest, error) {
	query := `SELECT id, name, college, description, date, image_url, contact_person
		FROM fests ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fests: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Fest, 0)
	for rows.Next() {
		f := &domain.Fest{}
		var contact sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.College, &f.Description, &f.Date, &f.ImageURL, &contact); err != nil {
			return nil, fmt.Errorf("failed to scan fest: %w", err)
		}
		if contact.Valid {
			f.ContactPerson = &contact.String
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) CreateFest(ctx context.Context, req domain.CreateFestRequest) (*domain.Fest, error) {
	query := `INSERT INTO fests (name, college, description, date, image_url, contact_person)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, req.Name, req.College, req.Description, req.Date, req.ImageURL, req.ContactPerson)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read fest id: %w", err)
	}

	return &domain.Fest{
		ID:            id,
		Name:          req.Name,
		College:       req.College,
		Description:   req.Description,
		Date:          req.Date,
		ImageURL:      req.ImageURL,
		ContactPerson: req.ContactPerson,
	}, nil
}
