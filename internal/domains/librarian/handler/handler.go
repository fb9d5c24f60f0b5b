package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	librarianModel "smartlibrary-backend/internal/domains/librarian/model"
	"smartlibrary-backend/internal/domains/librarian/service"
	libraryModel "smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/shared/response"
	"smartlibrary-backend/pkg/logger"
)

// =====================================================
// LIBRARIAN HANDLER
// =====================================================

type LibrarianHandler struct {
	librarianService service.ServiceInterface
}

func NewLibrarianHandler(librarianService service.ServiceInterface) *LibrarianHandler {
	return &LibrarianHandler{
		librarianService: librarianService,
	}
}

// Greeting returns the opening chat message
// GET /api/v1/librarian/greeting
func (h *LibrarianHandler) Greeting(c *gin.Context) {
	response.Success(c, http.StatusOK, librarianModel.GreetingResponse{Text: service.Greeting})
}

// Recommend answers a reader's question
// POST /api/v1/librarian/recommend
func (h *LibrarianHandler) Recommend(c *gin.Context) {
	// Step 1: Bind request body
	var req librarianModel.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Step 3: Ask the librarian (never fails, may fall back)
	reply := h.librarianService.RecommendText(c.Request.Context(), req.Query)
	if reply.Fallback {
		logger.Warn("librarian answered with fallback", map[string]interface{}{
			"operation": "recommend",
		})
	}

	response.Success(c, http.StatusOK, reply)
}

// Summary returns a generated summary of a book
// GET /api/v1/books/:id/summary
func (h *LibrarianHandler) Summary(c *gin.Context) {
	reply, err := h.librarianService.SummaryText(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, libraryModel.ErrBookNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, libraryModel.ErrCodeBookNotFound, "Book not found")
			return
		}
		logger.Error("summary request failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, reply)
}
