package model

const (
	// Lending
	LoanPeriodDays = 14

	// Review rating accepted from API requests
	MinRating = 1
	MaxRating = 5

	MaxCommentLength = 2000
	MaxQueryLength   = 200

	// Catalog filter value that matches every category
	CategoryAll = "All"

	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 50
)

// Credit score tiers shown on the profile page
const (
	CreditTierGood = "good"
	CreditTierFair = "fair"
	CreditTierPoor = "poor"

	creditGoodThreshold = 750
	creditFairThreshold = 600
)
