package ws

import "taskhub/internal/domain"

// server → client
type TasksPayload struct {
	Type  string        `json:"type"`
	Count int           `json:"count"`
	Tasks []domain.Task `json:"tasks"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
