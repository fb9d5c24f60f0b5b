package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/pkg/logger"
)

// Clock returns the current time
type Clock func() time.Time

type Option func(*Store)

// WithClock overrides time.Now
func WithClock(clock Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator overrides the review/notification id source
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// =====================================================
// STATE STORE
// =====================================================

// Store is the single owner of the active user, the catalog and the
// notification feed. Every write holds mu; every read returns copies.
type Store struct {
	mu    sync.RWMutex
	clock Clock
	newID func() string

	// The demo account keeps its borrowed books and favorites across
	// logout/login so catalog status and BorrowedBooks stay consistent.
	account  model.User
	loggedIn bool

	catalog       []model.Book
	index         map[string]int
	notifications []model.Notification
}

// New creates a store from seed. The seed is copied.
func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		clock:         time.Now,
		newID:         uuid.NewString,
		account:       seed.DemoUser.Clone(),
		catalog:       make([]model.Book, 0, len(seed.Books)),
		index:         make(map[string]int, len(seed.Books)),
		notifications: append(make([]model.Notification, 0, len(seed.Notifications)), seed.Notifications...),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, b := range seed.Books {
		s.index[b.ID] = len(s.catalog)
		s.catalog = append(s.catalog, b.Clone())
	}

	return s
}

// =====================================================
// SESSION
// =====================================================

// Login activates the fixed demo identity. No credential check.
func (s *Store) Login() (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loggedIn = true

	logger.Debug("User logged in", map[string]interface{}{"user_id": s.account.ID})
	return s.account.Clone(), nil
}

// Logout clears the active user
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return model.NewUnauthenticatedError()
	}
	s.loggedIn = false

	logger.Debug("User logged out", map[string]interface{}{"user_id": s.account.ID})
	return nil
}

// ToggleRole flips the active user's role between USER and ADMIN
func (s *Store) ToggleRole() (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return model.User{}, model.NewUnauthenticatedError()
	}
	s.account.Role = s.account.Role.Toggle()

	logger.Debug("User role toggled", map[string]interface{}{
		"user_id": s.account.ID,
		"role":    s.account.Role,
	})
	return s.account.Clone(), nil
}

// CurrentUser returns a copy of the active user
func (s *Store) CurrentUser() (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn {
		return model.User{}, model.NewUnauthenticatedError()
	}
	return s.account.Clone(), nil
}

// ActiveSession reports the active user id and role
func (s *Store) ActiveSession() (userID, role string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn {
		return "", "", false
	}
	return s.account.ID, string(s.account.Role), true
}

// =====================================================
// BORROW / RETURN
// =====================================================

// BorrowBook lends bookID to the active user without checking the book's
// current status. Callers that need the availability check use
// BorrowAvailableBook.
func (s *Store) BorrowBook(bookID string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.requireBookLocked(bookID)
	if err != nil {
		return model.Book{}, err
	}

	return s.borrowLocked(idx), nil
}

// BorrowAvailableBook lends bookID only if its status is Available.
// The check and the write happen under the same lock.
func (s *Store) BorrowAvailableBook(bookID string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.requireBookLocked(bookID)
	if err != nil {
		return model.Book{}, err
	}
	if book := &s.catalog[idx]; !book.IsAvailable() {
		return model.Book{}, model.NewBookUnavailableError(bookID, book.Status)
	}

	return s.borrowLocked(idx), nil
}

func (s *Store) borrowLocked(idx int) model.Book {
	now := s.clock()
	book := &s.catalog[idx]

	due := model.LoanDueDate(now)
	book.Status = model.BookStatusBorrowed
	book.DueDate = &due

	s.account.BorrowedBooks = model.AddID(s.account.BorrowedBooks, book.ID)

	s.prependNotificationLocked(model.Notification{
		Title:   "Book Borrowed",
		Message: fmt.Sprintf("You successfully borrowed %q. Due in %d days.", book.Title, model.LoanPeriodDays),
		Type:    model.NotificationTypeSuccess,
	}, now)

	logger.Debug("Book borrowed", map[string]interface{}{
		"book_id":  book.ID,
		"user_id":  s.account.ID,
		"due_date": due.Format(time.DateOnly),
	})
	return book.Clone()
}

// ReturnBook takes bookID back from the active user. Returning a book the
// user does not hold is rejected and changes nothing.
func (s *Store) ReturnBook(bookID string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.requireBookLocked(bookID)
	if err != nil {
		return model.Book{}, err
	}
	if !s.account.HasBorrowed(bookID) {
		return model.Book{}, model.NewNotBorrowedError(bookID)
	}

	now := s.clock()
	book := &s.catalog[idx]
	book.Status = model.BookStatusAvailable
	book.DueDate = nil

	s.account.BorrowedBooks = model.RemoveID(s.account.BorrowedBooks, bookID)

	s.prependNotificationLocked(model.Notification{
		Title:   "Book Returned",
		Message: fmt.Sprintf("Thank you for returning %q.", book.Title),
		Type:    model.NotificationTypeInfo,
	}, now)

	logger.Debug("Book returned", map[string]interface{}{
		"book_id": book.ID,
		"user_id": s.account.ID,
	})
	return book.Clone(), nil
}

// =====================================================
// FAVORITES / REVIEWS
// =====================================================

// ToggleFavorite adds bookID to favorites if absent, else removes it.
// Returns whether the book is a favorite afterwards.
func (s *Store) ToggleFavorite(bookID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireBookLocked(bookID); err != nil {
		return false, err
	}

	if s.account.IsFavorite(bookID) {
		s.account.Favorites = model.RemoveID(s.account.Favorites, bookID)
		return false, nil
	}
	s.account.Favorites = model.AddID(s.account.Favorites, bookID)
	return true, nil
}

// AddReview appends a review by the active user. Rating bounds are the
// caller's concern; an empty comment is rejected.
func (s *Store) AddReview(bookID string, rating int, comment string) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.requireBookLocked(bookID)
	if err != nil {
		return model.Review{}, err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return model.Review{}, model.NewEmptyCommentError()
	}

	review := model.Review{
		ID:       s.newID(),
		UserID:   s.account.ID,
		UserName: s.account.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     model.StartOfDay(s.clock()),
	}

	book := &s.catalog[idx]
	book.Reviews = append(book.Reviews, review)

	logger.Debug("Review added", map[string]interface{}{
		"book_id":   bookID,
		"review_id": review.ID,
		"rating":    rating,
	})
	return review, nil
}

// =====================================================
// READ SIDE
// =====================================================

// Books returns the whole catalog in seed order
func (s *Store) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneCatalogLocked()
}

// Book returns one catalog entry
func (s *Store) Book(bookID string) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[bookID]
	if !ok {
		return model.Book{}, model.NewBookNotFoundError(bookID)
	}
	return s.catalog[idx].Clone(), nil
}

// Search filters by title/author substring and category.
// An empty category or "All" matches every book.
func (s *Store) Search(query, category string) []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anyCategory := category == "" || strings.EqualFold(category, model.CategoryAll)

	out := make([]model.Book, 0, len(s.catalog))
	for i := range s.catalog {
		book := &s.catalog[i]
		if !anyCategory && !strings.EqualFold(book.Category, category) {
			continue
		}
		if !book.Matches(query) {
			continue
		}
		out = append(out, book.Clone())
	}
	return out
}

// Categories returns "All" followed by the distinct categories in catalog order
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.catalog))
	out := []string{model.CategoryAll}
	for _, book := range s.catalog {
		if seen[book.Category] {
			continue
		}
		seen[book.Category] = true
		out = append(out, book.Category)
	}
	return out
}

// Trending returns books by rating, highest first. limit <= 0 means all.
func (s *Store) Trending(limit int) []model.Book {
	books := s.Books()
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Rating > books[j].Rating
	})
	if limit > 0 && limit < len(books) {
		books = books[:limit]
	}
	return books
}

// BorrowedBooks returns the active user's borrowed books in catalog order
func (s *Store) BorrowedBooks() ([]model.Book, error) {
	return s.userBooks(func(u *model.User, id string) bool { return u.HasBorrowed(id) })
}

// FavoriteBooks returns the active user's favorites in catalog order
func (s *Store) FavoriteBooks() ([]model.Book, error) {
	return s.userBooks(func(u *model.User, id string) bool { return u.IsFavorite(id) })
}

func (s *Store) userBooks(include func(u *model.User, id string) bool) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn {
		return nil, model.NewUnauthenticatedError()
	}

	out := make([]model.Book, 0)
	for i := range s.catalog {
		if include(&s.account, s.catalog[i].ID) {
			out = append(out, s.catalog[i].Clone())
		}
	}
	return out, nil
}

// Notifications returns the feed, newest first
func (s *Store) Notifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]model.Notification, 0, len(s.notifications)), s.notifications...)
}

// Stats computes the admin dashboard numbers
func (s *Store) Stats() model.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock()
	stats := model.DashboardStats{
		TotalBooks: len(s.catalog),
		Categories: make([]model.CategoryCount, 0),
	}
	if s.loggedIn {
		stats.ActiveUsers = 1
	}

	position := make(map[string]int)
	for i := range s.catalog {
		book := &s.catalog[i]
		if book.Status == model.BookStatusBorrowed {
			stats.BorrowedCount++
		}
		if book.IsOverdue(now) {
			stats.OverdueCount++
		}

		if pos, ok := position[book.Category]; ok {
			stats.Categories[pos].Count++
			continue
		}
		position[book.Category] = len(stats.Categories)
		stats.Categories = append(stats.Categories, model.CategoryCount{Name: book.Category, Count: 1})
	}

	return stats
}

// =====================================================
// HELPERS
// =====================================================

// requireBookLocked checks the active user and resolves bookID.
// Caller must hold mu.
func (s *Store) requireBookLocked(bookID string) (int, error) {
	if !s.loggedIn {
		return 0, model.NewUnauthenticatedError()
	}
	idx, ok := s.index[bookID]
	if !ok {
		return 0, model.NewBookNotFoundError(bookID)
	}
	return idx, nil
}

func (s *Store) prependNotificationLocked(n model.Notification, now time.Time) {
	n.ID = s.newID()
	n.Date = model.NotificationDateJustNow
	n.CreatedAt = now
	s.notifications = append([]model.Notification{n}, s.notifications...)
}

func (s *Store) cloneCatalogLocked() []model.Book {
	out := make([]model.Book, len(s.catalog))
	for i := range s.catalog {
		out[i] = s.catalog[i].Clone()
	}
	return out
}
