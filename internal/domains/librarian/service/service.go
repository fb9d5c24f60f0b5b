package service

import (
	"context"

	"smartlibrary-backend/internal/domains/librarian/gateway"
	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/infrastructure/metrics"
)

// Text shown in place of model output
const (
	Greeting          = "Hello! I'm your AI Assistant. I can analyze our entire catalog to find the perfect book for you. What are you interested in today?"
	RecommendFallback = "I'm having trouble connecting to the library archives right now. Please try again later."
	SummaryFallback   = "Summary currently unavailable."
)

// Reply is always displayable. Fallback reports that Text is the fixed
// fallback rather than model output.
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Catalog reads books from the library store
type Catalog interface {
	Books() []model.Book
	Book(bookID string) (model.Book, error)
}

// Advisor is the recommendation gateway
type Advisor interface {
	Recommend(ctx context.Context, query string, books []model.Book) (string, error)
	Summarize(ctx context.Context, title, author string) (string, error)
}

type ServiceInterface interface {
	// RecommendText answers a reader's question from the whole catalog
	RecommendText(ctx context.Context, query string) Reply

	// SummaryText summarizes one book. Only an unknown id is an error.
	SummaryText(ctx context.Context, bookID string) (Reply, error)
}

type librarianService struct {
	catalog Catalog
	advisor Advisor
}

func NewLibrarianService(catalog Catalog, advisor Advisor) ServiceInterface {
	return &librarianService{
		catalog: catalog,
		advisor: advisor,
	}
}

func (s *librarianService) RecommendText(ctx context.Context, query string) Reply {
	text, err := s.advisor.Recommend(ctx, query, s.catalog.Books())
	if err != nil {
		metrics.RecordFallback(gateway.OperationRecommend)
		return Reply{Text: RecommendFallback, Fallback: true}
	}
	return Reply{Text: text}
}

func (s *librarianService) SummaryText(ctx context.Context, bookID string) (Reply, error) {
	book, err := s.catalog.Book(bookID)
	if err != nil {
		return Reply{}, err
	}

	text, err := s.advisor.Summarize(ctx, book.Title, book.Author)
	if err != nil {
		metrics.RecordFallback(gateway.OperationSummarize)
		return Reply{Text: SummaryFallback, Fallback: true}, nil
	}
	return Reply{Text: text}, nil
}
