package model

import (
	"strings"
	"time"
)

// BookStatus represents the circulation status of a book
type BookStatus string

const (
	BookStatusAvailable BookStatus = "Available"
	BookStatusBorrowed  BookStatus = "Borrowed"
	BookStatusReserved  BookStatus = "Reserved"
)

// Book represents a catalog entry
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CoverURL      string     `json:"cover_url"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Status        BookStatus `json:"status"`
	ISBN          string     `json:"isbn"`
	Rating        float64    `json:"rating"` // 0-5
	PublishedYear int        `json:"published_year"`
	Reviews       []Review   `json:"reviews"`

	// Set only while Status == Borrowed
	DueDate *time.Time `json:"due_date,omitempty"`
}

// Review is appended to a book and never mutated afterwards
type Review struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// IsAvailable checks if the book can be borrowed
func (b *Book) IsAvailable() bool {
	return b.Status == BookStatusAvailable
}

// IsOverdue reports whether the book's due date lies strictly before the day of now
func (b *Book) IsOverdue(now time.Time) bool {
	if b.DueDate == nil {
		return false
	}
	return b.DueDate.Before(StartOfDay(now))
}

// Matches reports whether query is a case-insensitive substring of title or author.
func (b *Book) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q)
}

// Clone returns a deep copy so callers never share slices with the store
func (b Book) Clone() Book {
	out := b
	out.Reviews = make([]Review, len(b.Reviews))
	copy(out.Reviews, b.Reviews)
	if b.DueDate != nil {
		due := *b.DueDate
		out.DueDate = &due
	}
	return out
}

// StartOfDay truncates t to midnight in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LoanDueDate returns the due date for a loan starting at now
func LoanDueDate(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, LoanPeriodDays)
}
