package http

import (
	"context"
	"time"

	"github.com/fjod/frocone/internal/catalog"
	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/orders"
)

type mockProducts struct {
	products   []*domain.Product
	err        error
	lastFilter domain.ProductFilter
}

func (m *mockProducts) ListProducts(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProducts) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

type mockOrders struct {
	placed []domain.CreateOrderRequest
	err    error
}

func (m *mockOrders) PlaceOrder(_ context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	m.placed = append(m.placed, req)
	return &domain.Order{
		ID:            int64(len(m.placed)),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		OrderType:     req.OrderType,
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockOrders) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	if id < 1 || int(id) > len(m.placed) {
		return nil, orders.ErrOrderNotFound
	}
	return &domain.Order{ID: id, Status: domain.OrderStatusPending}, nil
}

type mockInquiries struct {
	err error
}

func (m *mockInquiries) Submit(_ context.Context, req domain.CreateContactRequest) (*domain.ContactInquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ContactInquiry{ID: "inq-1", Name: req.Name, Email: req.Email, Message: req.Message, Status: domain.InquiryStatusNew}, nil
}

type mockContent struct {
	err   error
	blogs []*domain.Blog
}

func (m *mockContent) ListTestimonials(context.Context) ([]*domain.Testimonial, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.Testimonial{{ID: 1, CustomerName: "Priya Sharma", Rating: 5, IsVerified: true}}, nil
}

func (m *mockContent) ListBlogs(context.Context) ([]*domain.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.blogs, nil
}

func (m *mockContent) CreateBlog(_ context.Context, req domain.CreateBlogRequest) (*domain.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	b := &domain.Blog{ID: int64(len(m.blogs) + 1), Title: req.Title, Author: req.Author}
	m.blogs = append(m.blogs, b)
	return b, nil
}

func (m *mockContent) ListFaqs(context.Context) ([]*domain.Faq, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.Faq{{ID: 1, Question: "Do you offer vegan options?"}}, nil
}

func (m *mockContent) CreateFaq(_ context.Context, req domain.CreateFaqRequest) (*domain.Faq, error) {
	return &domain.Faq{ID: 2, Question: req.Question, Answer: req.Answer, Category: req.Category}, m.err
}

func (m *mockContent) ListFests(context.Context) ([]*domain.Fest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.Fest{}, nil
}

func (m *mockContent) CreateFest(_ context.Context, req domain.CreateFestRequest) (*domain.Fest, error) {
	return &domain.Fest{ID: 2, Name: req.Name}, m.err
}
