package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentLists(t *testing.T) {
	handler := NewContentHandler(&mockContent{}, 5*time.Second)

	tests := []struct {
		name    string
		serve   http.HandlerFunc
		failure string
	}{
		{"testimonials", handler.ListTestimonials, "Failed to fetch testimonials"},
		{"blogs", handler.ListBlogs, "Failed to fetch blogs"},
		{"faqs", handler.ListFaqs, "Failed to fetch FAQs"},
		{"fests", handler.ListFests, "Failed to fetch fests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			tt.serve(recorder, httptest.NewRequest(http.MethodGet, "/api/"+tt.name, nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		})
	}

	failing := NewContentHandler(&mockContent{err: errors.New("locked")}, 5*time.Second)
	for _, serve := range []struct {
		fn      http.HandlerFunc
		failure string
	}{
		{failing.ListTestimonials, "Failed to fetch testimonials"},
		{failing.ListBlogs, "Failed to fetch blogs"},
		{failing.ListFaqs, "Failed to fetch FAQs"},
		{failing.ListFests, "Failed to fetch fests"},
	} {
		recorder := httptest.NewRecorder()
		serve.fn(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"message":"`+serve.failure+`"}`, recorder.Body.String())
	}
}

func TestContentLists_EmptyIsArray(t *testing.T) {
	handler := NewContentHandler(&mockContent{}, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.ListFests(recorder, httptest.NewRequest(http.MethodGet, "/api/fests", nil))

	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestCreateBlog(t *testing.T) {
	store := &mockContent{}
	handler := NewContentHandler(store, 5*time.Second)
	recorder := httptest.NewRecorder()
	body := `{"title":"Summer Menu","content":"c","author":"Frocone Team","imageUrl":"i.jpg","excerpt":"e","category":"News"}`

	handler.CreateBlog(recorder, httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Len(t, store.blogs, 1)
}

func TestCreateBlog_Validation(t *testing.T) {
	store := &mockContent{}
	handler := NewContentHandler(store, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.CreateBlog(recorder, httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"Only a title"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"message":"content is required","field":"content"}`, recorder.Body.String())
	assert.Empty(t, store.blogs)
}

func TestCreateFaqAndFest(t *testing.T) {
	handler := NewContentHandler(&mockContent{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.CreateFaq(recorder, httptest.NewRequest(http.MethodPost, "/api/faqs",
		strings.NewReader(`{"question":"Do you deliver?","answer":"Yes","category":"Orders"}`)))
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.CreateFest(recorder, httptest.NewRequest(http.MethodPost, "/api/fests",
		strings.NewReader(`{"name":"Pearl","college":"BITS","description":"d","date":"March"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"message":"imageUrl is required","field":"imageUrl"}`, recorder.Body.String())
}

func TestCreateFaq_StoreFailure(t *testing.T) {
	handler := NewContentHandler(&mockContent{err: errors.New("readonly database")}, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.CreateFaq(recorder, httptest.NewRequest(http.MethodPost, "/api/faqs",
		strings.NewReader(`{"question":"q","answer":"a","category":"c"}`)))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"message":"Failed to create FAQ"}`, recorder.Body.String())
}
