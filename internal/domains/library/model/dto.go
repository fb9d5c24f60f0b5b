package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ListBooksRequest filters the catalog (Library page)
type ListBooksRequest struct {
	Query    string `form:"q"`
	Category string `form:"category"`
}

func (r ListBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query,
			validation.Length(0, MaxQueryLength).Error("search query is too long"),
		),
	)
}

// TrendingRequest lists the highest rated books (Home page)
type TrendingRequest struct {
	Limit int `form:"limit"`
}

// Normalize applies default and upper bound to Limit
func (r *TrendingRequest) Normalize() {
	if r.Limit < 1 {
		r.Limit = DefaultTrendingLimit
	}
	if r.Limit > MaxTrendingLimit {
		r.Limit = MaxTrendingLimit
	}
}

// AddReviewRequest request to post a review
type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"required"`
}

func (r AddReviewRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.RuneLength(1, MaxCommentLength).Error("comment must not exceed 2000 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// LoginResponse carries the demo session token
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// ProfileResponse is the profile page payload
type ProfileResponse struct {
	User          User   `json:"user"`
	CreditTier    string `json:"credit_tier"`
	BorrowedCount int    `json:"borrowed_count"`
	FavoriteCount int    `json:"favorite_count"`
}

// FavoriteResponse reports the favorite state after a toggle
type FavoriteResponse struct {
	BookID     string   `json:"book_id"`
	IsFavorite bool     `json:"is_favorite"`
	Favorites  []string `json:"favorites"`
}
