package domain

import "errors"

var (
	ErrNotFound           = errors.New("project not found")
	ErrInvalidTransition  = errors.New("invalid project status transition")
	ErrCommentForbidden   = errors.New("author may not comment on this project")
	ErrConflict           = errors.New("project was modified concurrently")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)
