package domain

import "time"

type Testimonial struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Avatar       *string   `json:"avatar"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"imageUrl"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBlogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ImageURL string `json:"imageUrl"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

type Faq struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type CreateFaqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type Fest struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	College       string  `json:"college"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	ImageURL      string  `json:"imageUrl"`
	ContactPerson *string `json:"contactPerson"`
}

type CreateFestRequest struct {
	Name          string  `json:"name"`
	College       string  `json:"college"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	ImageURL      string  `json:"imageUrl"`
	ContactPerson *string `json:"contactPerson,omitempty"`
}
