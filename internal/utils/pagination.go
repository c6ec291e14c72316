package utils

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Size   int
	Offset int
}

// NewPagination validates page >= 1 and size in [1, MaxPageSize].
func NewPagination(page, size int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, fmt.Errorf("page must be greater than or equal to 1")
	}
	if size < 1 || size > MaxPageSize {
		return Pagination{}, fmt.Errorf("size must be between 1 and %d", MaxPageSize)
	}
	return Pagination{Page: page, Size: size, Offset: (page - 1) * size}, nil
}

// ParsePagination reads page and size query params, defaulting to page 1 of DefaultPageSize.
func ParsePagination(c *fiber.Ctx) (Pagination, error) {
	page, err := parseInt(c.Query("page"), 1)
	if err != nil {
		return Pagination{}, fmt.Errorf("page must be an integer")
	}
	size, err := parseInt(c.Query("size"), DefaultPageSize)
	if err != nil {
		return Pagination{}, fmt.Errorf("size must be an integer")
	}
	return NewPagination(page, size)
}

// Pages returns the number of pages needed to hold total items.
func (p Pagination) Pages(total int64) int64 {
	if p.Size <= 0 {
		return 0
	}
	size := int64(p.Size)
	return (total + size - 1) / size
}

// ParseOptionalBool reads a boolean query param; an empty value yields nil.
func ParseOptionalBool(value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
