package service

import "errors"

var (
	// ErrInterviewNotFound means the session id names no stored session.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrNotOwner means the caller is not the session's owner.
	ErrNotOwner = errors.New("not authorized for this interview")

	// ErrInterviewNotActive means the session already ended.
	ErrInterviewNotActive = errors.New("interview is not active or already ended")

	// ErrConflict means a concurrent answer on the same session won the
	// append race; the caller should re-read and retry.
	ErrConflict = errors.New("interview was modified concurrently")
)
