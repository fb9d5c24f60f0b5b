package model

import "time"

// Role of the active user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Toggle flips between USER and ADMIN
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

type User struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Role          Role          `json:"role"`
	AvatarURL     string        `json:"avatar_url"`
	BorrowedBooks []string      `json:"borrowed_books"` // Book IDs, unique
	Favorites     []string      `json:"favorites"`      // Book IDs, unique
	CreditScore   int           `json:"credit_score"`
	Achievements  []Achievement `json:"achievements"`
}

type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// HasBorrowed checks if bookID is in the user's borrowed set
func (u *User) HasBorrowed(bookID string) bool {
	return containsID(u.BorrowedBooks, bookID)
}

// IsFavorite checks if bookID is in the user's favorites
func (u *User) IsFavorite(bookID string) bool {
	return containsID(u.Favorites, bookID)
}

// IsAdmin checks role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreditTier classifies the credit score
func (u *User) CreditTier() string {
	switch {
	case u.CreditScore >= creditGoodThreshold:
		return CreditTierGood
	case u.CreditScore >= creditFairThreshold:
		return CreditTierFair
	default:
		return CreditTierPoor
	}
}

func (u User) Clone() User {
	out := u
	out.BorrowedBooks = append(make([]string, 0, len(u.BorrowedBooks)), u.BorrowedBooks...)
	out.Favorites = append(make([]string, 0, len(u.Favorites)), u.Favorites...)
	out.Achievements = append(make([]Achievement, 0, len(u.Achievements)), u.Achievements...)
	return out
}

// AddID appends id unless already present
func AddID(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// RemoveID drops every occurrence of id
func RemoveID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
