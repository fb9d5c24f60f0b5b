package model

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalBooks    int             `json:"total_books"`
	ActiveUsers   int             `json:"active_users"`
	BorrowedCount int             `json:"borrowed_count"`
	OverdueCount  int             `json:"overdue_count"`
	Categories    []CategoryCount `json:"categories"` // first-seen catalog order
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
