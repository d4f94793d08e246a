package services

import (
	"math"
	"strconv"
	"strings"

	"game_inventory/internal/models"
)

const (
	msgRequired      = "title and platform are required"
	msgPriceNumber   = "price must be a number"
	msgStockNumber   = "stock must be a whole number"
	msgPriceNegative = "price must not be negative"
	msgStockNegative = "stock must not be negative"
	msgStatus        = "status must be 0 or 1"
)

// ValidationError rejects a submission. Game holds the normalized input so
// the form can be shown again.
type ValidationError struct {
	Message string
	Game    models.Game
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Normalize trims the form, turns blank optional fields into nil and checks
// the record invariants. Price, stock and status default to 0, 0 and 1 when
// left empty.
func Normalize(f models.GameForm) (models.Game, error) {
	g := models.Game{
		Code:     optional(f.Code),
		Title:    strings.TrimSpace(f.Title),
		Platform: strings.TrimSpace(f.Platform),
		Genre:    optional(f.Genre),
		Status:   models.StatusActive,
	}

	var parseMsg string

	if price, err := parseFloat(f.Price); err != nil {
		parseMsg = msgPriceNumber
	} else {
		g.Price = price
	}

	if stock, err := parseInt(f.Stock, 0); err != nil {
		if parseMsg == "" {
			parseMsg = msgStockNumber
		}
	} else {
		g.Stock = stock
	}

	if status, err := parseInt(f.Status, int(models.StatusActive)); err != nil {
		if parseMsg == "" {
			parseMsg = msgStatus
		}
	} else {
		g.Status = models.GameStatus(status)
	}

	var msg string
	switch {
	case g.Title == "" || g.Platform == "":
		msg = msgRequired
	case parseMsg != "":
		msg = parseMsg
	case g.Price < 0:
		msg = msgPriceNegative
	case g.Stock < 0:
		msg = msgStockNegative
	case !g.Status.Valid():
		msg = msgStatus
	}

	if msg != "" {
		return g, &ValidationError{Message: msg, Game: g}
	}

	return g, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}

	return v, nil
}

func parseInt(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
