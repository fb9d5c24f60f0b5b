package gateway

import (
	"fmt"
	"strings"

	"smartlibrary-backend/internal/domains/library/model"
)

const recommendInstructions = `Based on the catalog above, recommend 1-3 books that best fit the user's request.
If the user's request is general (e.g., "tell me a joke"), answer politely but try to steer them back to reading.
Provide the response in a friendly, conversational tone. Format the book titles in **bold**.`

const summaryTemplate = `Write a concise, engaging summary (max 100 words) for the book "%s" by %s. Highlight the main themes.`

// CatalogLine renders one book for the recommendation prompt
func CatalogLine(book model.Book) string {
	return fmt.Sprintf("%s by %s (Category: %s)", book.Title, book.Author, book.Category)
}

// BuildRecommendPrompt lists the catalog, quotes the query verbatim and
// appends the librarian instructions
func BuildRecommendPrompt(query string, books []model.Book) string {
	var b strings.Builder

	b.WriteString("You are a helpful and knowledgeable librarian for the \"SmartLibrary\".\n")
	b.WriteString("Here is the list of books currently in our catalog:\n")
	for i, book := range books {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(CatalogLine(book))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "The user asks: \"%s\"\n\n", query)
	b.WriteString(recommendInstructions)

	return b.String()
}

// BuildSummaryPrompt asks for a short thematic summary
func BuildSummaryPrompt(title, author string) string {
	return fmt.Sprintf(summaryTemplate, title, author)
}
