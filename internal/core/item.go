package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
	Bought    bool    `json:"bought"`
	CreatedAt int64   `json:"createdAt"` // unix milliseconds, immutable after creation
}

var (
	ErrEmptyName    = errors.New("empty item name")
	ErrInvalidPrice = errors.New("invalid price")
	ErrItemNotFound = errors.New("item not found")
)

// LineTotal returns price * quantity for a single item.
func LineTotal(it Item) float64 {
	return it.Price * float64(it.Quantity)
}

func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return ErrEmptyName
	}
	if it.Price <= 0 || math.IsInf(it.Price, 0) || math.IsNaN(it.Price) {
		return ErrInvalidPrice
	}
	return nil
}

// ParsePrice parses a positive decimal amount from user input.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidPrice for empty input, non-numeric input, non-finite
// values, and amounts <= 0.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}

// ParseQuantity parses an integer quantity. Unparseable input and values
// below 1 both yield 1, matching the form behavior: quantity never fails
// validation, it just floors.
func ParseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 1 {
		return 1
	}
	return q
}
