package domain

import "errors"

var (
	ErrMazeNotFound  = errors.New("maze not found")
	ErrRoundNotFound = errors.New("round not found")
)
