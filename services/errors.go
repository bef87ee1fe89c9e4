package services

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidSession  = errors.New("invalid session")
	ErrInvalidIDToken  = errors.New("invalid id token")
)
