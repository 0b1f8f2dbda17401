package dto

import "time"

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type UserResponse struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// QuestionSummaryDTO is one row of the question list.
type QuestionSummaryDTO struct {
	ID          uint        `json:"id"`
	Subject     string      `json:"subject"`
	Author      UserSummary `json:"author"`
	CreateDate  time.Time   `json:"create_date"`
	ModifyDate  *time.Time  `json:"modify_date,omitempty"`
	AnswerCount int64       `json:"answer_count"`
	VoterCount  int64       `json:"voter_count"`
}

type QuestionPageDTO struct {
	Items       []QuestionSummaryDTO `json:"items"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"total_pages"`
	HasPrevious bool                 `json:"has_previous"`
	HasNext     bool                 `json:"has_next"`
	Keyword     string               `json:"kw,omitempty"`
}

type AnswerResponseDTO struct {
	ID          uint        `json:"id"`
	QuestionID  uint        `json:"question_id"`
	Author      UserSummary `json:"author"`
	Content     string      `json:"content"`
	ContentHTML string      `json:"content_html"`
	CreateDate  time.Time   `json:"create_date"`
	ModifyDate  *time.Time  `json:"modify_date,omitempty"`
	VoterCount  int         `json:"voter_count"`
	Voters      []string    `json:"voters"`
}

type QuestionDetailDTO struct {
	ID          uint                `json:"id"`
	Subject     string              `json:"subject"`
	Content     string              `json:"content"`
	ContentHTML string              `json:"content_html"`
	Author      UserSummary         `json:"author"`
	CreateDate  time.Time           `json:"create_date"`
	ModifyDate  *time.Time          `json:"modify_date,omitempty"`
	VoterCount  int64               `json:"voter_count"`
	Answers     []AnswerResponseDTO `json:"answers"`
}

type VoteResponse struct {
	Voters int64 `json:"voters"`
}

// ErrorResponse is the body of every non-2xx reply. Redirect names the view
// a client should return to after a refused action.
type ErrorResponse struct {
	Message  string              `json:"message"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

// RedirectResponse acknowledges a deletion and names the view to go back to.
type RedirectResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
