package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxQuestionLength = 1000

// RecommendRequest is one chat message to the librarian
type RecommendRequest struct {
	Query string `json:"query" binding:"required"`
}

func (r *RecommendRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	return validation.ValidateStruct(r,
		validation.Field(&r.Query,
			validation.Required.Error("query is required"),
			validation.RuneLength(1, MaxQuestionLength).Error("query must not exceed 1000 characters"),
		),
	)
}

// GreetingResponse opens the chat
type GreetingResponse struct {
	Text string `json:"text"`
}
