package service

import (
	"context"
	"fmt"

	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/infrastructure/metrics"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type libraryService struct {
	store  StateStore
	tokens TokenIssuer
}

func NewLibraryService(store StateStore, tokens TokenIssuer) ServiceInterface {
	return &libraryService{
		store:  store,
		tokens: tokens,
	}
}

// record counts the outcome of a store operation and passes err through
func record(operation string, err error) error {
	metrics.RecordStoreOperation(operation, model.CodeOf(err))
	return err
}

// =====================================================
// SESSION
// =====================================================

func (s *libraryService) Login(ctx context.Context) (*model.LoginResponse, error) {
	// Step 1: Activate demo identity
	user, err := s.store.Login()
	if err := record("login", err); err != nil {
		return nil, err
	}

	// Step 2: Issue session token
	token, expiresAt, err := s.tokens.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (s *libraryService) Logout(ctx context.Context) error {
	return record("logout", s.store.Logout())
}

func (s *libraryService) Profile(ctx context.Context) (*model.ProfileResponse, error) {
	user, err := s.store.CurrentUser()
	if err != nil {
		return nil, err
	}

	return &model.ProfileResponse{
		User:          user,
		CreditTier:    user.CreditTier(),
		BorrowedCount: len(user.BorrowedBooks),
		FavoriteCount: len(user.Favorites),
	}, nil
}

func (s *libraryService) ToggleRole(ctx context.Context) (*model.User, error) {
	user, err := s.store.ToggleRole()
	if err := record("toggle_role", err); err != nil {
		return nil, err
	}
	return &user, nil
}

// =====================================================
// CATALOG
// =====================================================

func (s *libraryService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}
	return s.store.Search(req.Query, req.Category), nil
}

func (s *libraryService) Categories(ctx context.Context) []string {
	return s.store.Categories()
}

func (s *libraryService) Trending(ctx context.Context, req model.TrendingRequest) []model.Book {
	req.Normalize()
	return s.store.Trending(req.Limit)
}

func (s *libraryService) GetBook(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.store.Book(bookID)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// =====================================================
// CIRCULATION
// =====================================================

func (s *libraryService) Borrow(ctx context.Context, bookID string) (*model.Book, error) {
	// Availability is checked atomically inside the store
	book, err := s.store.BorrowAvailableBook(bookID)
	if err := record("borrow", err); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *libraryService) Return(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.store.ReturnBook(bookID)
	if err := record("return", err); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *libraryService) ToggleFavorite(ctx context.Context, bookID string) (*model.FavoriteResponse, error) {
	isFavorite, err := s.store.ToggleFavorite(bookID)
	if err := record("toggle_favorite", err); err != nil {
		return nil, err
	}

	user, err := s.store.CurrentUser()
	if err != nil {
		return nil, err
	}

	return &model.FavoriteResponse{
		BookID:     bookID,
		IsFavorite: isFavorite,
		Favorites:  user.Favorites,
	}, nil
}

func (s *libraryService) AddReview(ctx context.Context, bookID string, req model.AddReviewRequest) (*model.Review, error) {
	// Step 1: Validate request (rating 1-5, non-empty comment)
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Append review
	review, err := s.store.AddReview(bookID, req.Rating, req.Comment)
	if err := record("add_review", err); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *libraryService) BorrowedBooks(ctx context.Context) ([]model.Book, error) {
	return s.store.BorrowedBooks()
}

func (s *libraryService) FavoriteBooks(ctx context.Context) ([]model.Book, error) {
	return s.store.FavoriteBooks()
}

func (s *libraryService) Notifications(ctx context.Context) ([]model.Notification, error) {
	if _, err := s.store.CurrentUser(); err != nil {
		return nil, err
	}
	return s.store.Notifications(), nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *libraryService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	user, err := s.store.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, model.NewForbiddenError()
	}

	stats := s.store.Stats()
	return &stats, nil
}
