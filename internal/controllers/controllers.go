package controllers

import "errors"

var (
	ErrInvalidID  = errors.New("invalid id")
	ErrNotFound   = errors.New("game not found")
	ErrBadRequest = errors.New("bad request")
	ErrGetGames   = errors.New("failed to get games")
	ErrGetGame    = errors.New("failed to get game")
	ErrCreate     = errors.New("failed to save")
	ErrUpdate     = errors.New("failed to update")
	ErrDelete     = errors.New("failed to delete")
	ErrToggle     = errors.New("failed to toggle status")
	ErrRender     = errors.New("failed to render page")
	ErrEncoding   = errors.New("failed to encode")
	ErrUnhealthy  = errors.New("database unavailable")
)
