package store

import (
	"time"

	"smartlibrary-backend/internal/domains/library/model"
)

// Seed is the initial content of a Store
type Seed struct {
	Books         []model.Book
	DemoUser      model.User
	Notifications []model.Notification
}

// DefaultSeed returns the demo catalog, demo user and notification feed
func DefaultSeed() Seed {
	return Seed{
		Books:         defaultBooks(),
		DemoUser:      defaultUser(),
		Notifications: defaultNotifications(),
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func defaultBooks() []model.Book {
	return []model.Book{
		{
			ID:            "1",
			Title:         "The Great Algorithm",
			Author:        "Ada Lovelace",
			CoverURL:      "https://picsum.photos/300/450?random=1",
			Category:      "Technology",
			Description:   "A deep dive into the history of computing and the future of AI algorithms.",
			Status:        model.BookStatusAvailable,
			ISBN:          "978-3-16-148410-0",
			Rating:        4.8,
			PublishedYear: 2023,
			Reviews: []model.Review{
				{ID: "r1", UserID: "u2", UserName: "John Doe", Rating: 5, Comment: "Mind blowing!", Date: day(2023, time.October, 12)},
			},
		},
		{
			ID:            "2",
			Title:         "Silent Cosmos",
			Author:        "Carl Sagan II",
			CoverURL:      "https://picsum.photos/300/450?random=2",
			Category:      "Science",
			Description:   "Exploring the quiet corners of the universe and dark matter.",
			Status:        model.BookStatusBorrowed,
			ISBN:          "978-1-40-289462-6",
			Rating:        4.5,
			PublishedYear: 2021,
			DueDate:       dayPtr(2023, time.December, 1),
			Reviews:       []model.Review{},
		},
		{
			ID:            "3",
			Title:         "Design Systems 101",
			Author:        "Sarah Drasner",
			CoverURL:      "https://picsum.photos/300/450?random=3",
			Category:      "Design",
			Description:   "Building scalable UI libraries for modern web applications.",
			Status:        model.BookStatusAvailable,
			ISBN:          "978-0-13-235088-4",
			Rating:        4.9,
			PublishedYear: 2024,
			Reviews:       []model.Review{},
		},
		{
			ID:            "4",
			Title:         "The Lost City of Z",
			Author:        "David Grann",
			CoverURL:      "https://picsum.photos/300/450?random=4",
			Category:      "History",
			Description:   "A tale of deadly obsession in the Amazon.",
			Status:        model.BookStatusAvailable,
			ISBN:          "978-0-385-51353-2",
			Rating:        4.2,
			PublishedYear: 2009,
			Reviews:       []model.Review{},
		},
		{
			ID:            "5",
			Title:         "React Patterns",
			Author:        "Michael Chan",
			CoverURL:      "https://picsum.photos/300/450?random=5",
			Category:      "Technology",
			Description:   "Advanced patterns for building resilient React applications.",
			Status:        model.BookStatusReserved,
			ISBN:          "978-1-491-95202-4",
			Rating:        4.7,
			PublishedYear: 2022,
			Reviews:       []model.Review{},
		},
		{
			ID:            "6",
			Title:         "Culinary Arts",
			Author:        "Julia Child",
			CoverURL:      "https://picsum.photos/300/450?random=6",
			Category:      "Cooking",
			Description:   "Mastering the art of French cooking for the modern era.",
			Status:        model.BookStatusAvailable,
			ISBN:          "978-0-394-40135-6",
			Rating:        4.6,
			PublishedYear: 1961,
			Reviews:       []model.Review{},
		},
		{
			ID:            "7",
			Title:         "Zero to One",
			Author:        "Peter Thiel",
			CoverURL:      "https://picsum.photos/300/450?random=7",
			Category:      "Business",
			Description:   "Notes on startups, or how to build the future.",
			Status:        model.BookStatusAvailable,
			ISBN:          "978-0-8041-3929-8",
			Rating:        4.5,
			PublishedYear: 2014,
			Reviews:       []model.Review{},
		},
		{
			ID:            "8",
			Title:         "Dune",
			Author:        "Frank Herbert",
			CoverURL:      "https://picsum.photos/300/450?random=8",
			Category:      "Sci-Fi",
			Description:   "Set on the desert planet Arrakis, Dune is the story of the boy Paul Atreides.",
			Status:        model.BookStatusBorrowed,
			ISBN:          "978-0-441-17271-9",
			Rating:        4.9,
			PublishedYear: 1965,
			DueDate:       dayPtr(2023, time.November, 25),
			Reviews:       []model.Review{},
		},
	}
}

func defaultUser() model.User {
	return model.User{
		ID:            "u1",
		Name:          "Alex Librarian",
		Email:         "alex@smartlib.com",
		Role:          model.RoleUser,
		AvatarURL:     "https://picsum.photos/100/100?random=99",
		BorrowedBooks: []string{"2", "8"},
		Favorites:     []string{"1", "3"},
		CreditScore:   780,
		Achievements: []model.Achievement{
			{ID: "a1", Title: "Bookworm", Description: "Borrowed 10+ books", Icon: "BookOpen", UnlockedAt: day(2023, time.September, 15)},
			{ID: "a2", Title: "Punctual", Description: "Returned 5 books on time", Icon: "Clock", UnlockedAt: day(2023, time.October, 1)},
		},
	}
}

func defaultNotifications() []model.Notification {
	return []model.Notification{
		{
			ID:      "n1",
			Title:   "Book Due Soon",
			Message: `The book "Silent Cosmos" is due in 3 days.`,
			Date:    "2h ago",
			Type:    model.NotificationTypeWarning,
		},
		{
			ID:      "n2",
			Title:   "Reservation Available",
			Message: `The book "React Patterns" is now available for pickup.`,
			Date:    "1d ago",
			Type:    model.NotificationTypeSuccess,
		},
	}
}
