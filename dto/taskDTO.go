package dto

// CreateTaskRequest carries the dashboard form signals.
type CreateTaskRequest struct {
	Input  string `json:"input"`
	Public bool   `json:"public"`
}
