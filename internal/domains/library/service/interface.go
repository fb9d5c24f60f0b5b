package service

import (
	"context"
	"time"

	"smartlibrary-backend/internal/domains/library/model"
)

// =====================================================
// DEPENDENCIES
// =====================================================

// StateStore is the subset of store.Store the service needs
type StateStore interface {
	Login() (model.User, error)
	Logout() error
	ToggleRole() (model.User, error)
	CurrentUser() (model.User, error)

	BorrowAvailableBook(bookID string) (model.Book, error)
	ReturnBook(bookID string) (model.Book, error)
	ToggleFavorite(bookID string) (bool, error)
	AddReview(bookID string, rating int, comment string) (model.Review, error)

	Book(bookID string) (model.Book, error)
	Search(query, category string) []model.Book
	Categories() []string
	Trending(limit int) []model.Book
	BorrowedBooks() ([]model.Book, error)
	FavoriteBooks() ([]model.Book, error)
	Notifications() []model.Notification
	Stats() model.DashboardStats
}

// TokenIssuer issues session tokens for the demo identity
type TokenIssuer interface {
	GenerateSessionToken(userID, email string) (string, time.Time, error)
}

// =====================================================
// LIBRARY SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// SESSION
	// ========================================

	// Login activates the demo identity and issues a session token
	Login(ctx context.Context) (*model.LoginResponse, error)

	// Logout clears the active user
	Logout(ctx context.Context) error

	// Profile returns the active user with derived profile fields
	Profile(ctx context.Context) (*model.ProfileResponse, error)

	// ToggleRole flips USER/ADMIN
	ToggleRole(ctx context.Context) (*model.User, error)

	// ========================================
	// CATALOG
	// ========================================

	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error)
	Categories(ctx context.Context) []string
	Trending(ctx context.Context, req model.TrendingRequest) []model.Book
	GetBook(ctx context.Context, bookID string) (*model.Book, error)

	// ========================================
	// CIRCULATION
	// ========================================

	// Borrow lends an Available book to the active user
	Borrow(ctx context.Context, bookID string) (*model.Book, error)

	// Return takes a borrowed book back
	Return(ctx context.Context, bookID string) (*model.Book, error)

	ToggleFavorite(ctx context.Context, bookID string) (*model.FavoriteResponse, error)
	AddReview(ctx context.Context, bookID string, req model.AddReviewRequest) (*model.Review, error)

	BorrowedBooks(ctx context.Context) ([]model.Book, error)
	FavoriteBooks(ctx context.Context) ([]model.Book, error)
	Notifications(ctx context.Context) ([]model.Notification, error)

	// ========================================
	// ADMIN
	// ========================================

	// Dashboard requires the ADMIN role
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}
