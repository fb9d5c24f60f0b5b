package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/domains/library/service"
	"smartlibrary-backend/internal/shared/response"
	"smartlibrary-backend/pkg/logger"
)

// =====================================================
// LIBRARY HANDLER
// =====================================================

type LibraryHandler struct {
	libraryService service.ServiceInterface
}

func NewLibraryHandler(libraryService service.ServiceInterface) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

// =====================================================
// SESSION ENDPOINTS
// =====================================================

// Login activates the demo user
// POST /api/v1/auth/login
func (h *LibraryHandler) Login(c *gin.Context) {
	resp, err := h.libraryService.Login(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout clears the active user
// POST /api/v1/auth/logout
func (h *LibraryHandler) Logout(c *gin.Context) {
	if err := h.libraryService.Logout(c.Request.Context()); err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfile returns the active user
// GET /api/v1/users/me
func (h *LibraryHandler) GetProfile(c *gin.Context) {
	profile, err := h.libraryService.Profile(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ToggleRole switches between USER and ADMIN
// POST /api/v1/users/me/role
func (h *LibraryHandler) ToggleRole(c *gin.Context) {
	user, err := h.libraryService.ToggleRole(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetBorrowedBooks
// GET /api/v1/users/me/borrowed
func (h *LibraryHandler) GetBorrowedBooks(c *gin.Context) {
	books, err := h.libraryService.BorrowedBooks(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.SuccessWithTotal(c, books, len(books))
}

// GetFavoriteBooks
// GET /api/v1/users/me/favorites
func (h *LibraryHandler) GetFavoriteBooks(c *gin.Context) {
	books, err := h.libraryService.FavoriteBooks(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.SuccessWithTotal(c, books, len(books))
}

// =====================================================
// CATALOG ENDPOINTS
// =====================================================

// ListBooks searches the catalog
// GET /api/v1/books?q=&category=
func (h *LibraryHandler) ListBooks(c *gin.Context) {
	// Step 1: Bind query parameters
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	// Step 2: Call service (validates)
	books, err := h.libraryService.ListBooks(c.Request.Context(), req)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.SuccessWithTotal(c, books, len(books))
}

// ListCategories
// GET /api/v1/books/categories
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, h.libraryService.Categories(c.Request.Context()))
}

// ListTrending returns the highest rated books
// GET /api/v1/books/trending?limit=
func (h *LibraryHandler) ListTrending(c *gin.Context) {
	var req model.TrendingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	books := h.libraryService.Trending(c.Request.Context(), req)
	response.SuccessWithTotal(c, books, len(books))
}

// GetBook
// GET /api/v1/books/:id
func (h *LibraryHandler) GetBook(c *gin.Context) {
	book, err := h.libraryService.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// =====================================================
// CIRCULATION ENDPOINTS
// =====================================================

// BorrowBook
// POST /api/v1/books/:id/borrow
func (h *LibraryHandler) BorrowBook(c *gin.Context) {
	book, err := h.libraryService.Borrow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// ReturnBook
// POST /api/v1/books/:id/return
func (h *LibraryHandler) ReturnBook(c *gin.Context) {
	book, err := h.libraryService.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// ToggleFavorite
// POST /api/v1/books/:id/favorite
func (h *LibraryHandler) ToggleFavorite(c *gin.Context) {
	resp, err := h.libraryService.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// AddReview posts a review on a book
// POST /api/v1/books/:id/reviews
func (h *LibraryHandler) AddReview(c *gin.Context) {
	// Step 1: Bind request body
	var req model.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service (validates rating and comment)
	review, err := h.libraryService.AddReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, review)
}

// ListNotifications
// GET /api/v1/notifications
func (h *LibraryHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.libraryService.Notifications(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.SuccessWithTotal(c, notifications, len(notifications))
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// GetDashboard returns catalog statistics
// GET /api/v1/admin/dashboard
func (h *LibraryHandler) GetDashboard(c *gin.Context) {
	stats, err := h.libraryService.Dashboard(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func respondLibraryError(c *gin.Context, err error) {
	statusCode, errCode := mapLibraryError(err)
	if statusCode == http.StatusInternalServerError {
		logger.Error("library request failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	var libErr *model.LibraryError
	message := err.Error()
	if errors.As(err, &libErr) && libErr.Code != model.ErrCodeInvalidRequest {
		message = libErr.Message
	}
	response.ErrorResponse(c, statusCode, errCode, message)
}

// mapLibraryError maps library error to HTTP status code
func mapLibraryError(err error) (int, string) {
	var libErr *model.LibraryError
	if errors.As(err, &libErr) {
		switch libErr.Code {
		case model.ErrCodeUnauthenticated:
			return http.StatusUnauthorized, libErr.Code
		case model.ErrCodeForbidden:
			return http.StatusForbidden, libErr.Code
		case model.ErrCodeBookNotFound:
			return http.StatusNotFound, libErr.Code
		case model.ErrCodeNotBorrowed, model.ErrCodeBookUnavailable:
			return http.StatusConflict, libErr.Code
		case model.ErrCodeEmptyComment, model.ErrCodeInvalidRequest:
			return http.StatusBadRequest, libErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
