package entity

import "time"

type AskQuestionRequest struct {
	Question *string `json:"question"`
}

type AskQuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Kind     string `json:"kind"`
}

type CreateSessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDTO struct {
	ID              string    `json:"id"`
	CurrentQuestion string    `json:"current_question,omitempty"`
	CurrentAnswer   string    `json:"current_answer,omitempty"`
	HistorySize     int       `json:"history_size"`
	CreatedAt       time.Time `json:"created_at"`
}

type HistoryItemDTO struct {
	Number   int    `json:"number"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type HistoryDTO struct {
	Items []HistoryItemDTO `json:"items"`
	Total int              `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
