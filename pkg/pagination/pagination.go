// Package pagination turns page/limit query parameters into offset math and
// builds the list response envelope.
package pagination

import (
	"errors"
	"math"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit inside int for any accepted limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Params is a normalised page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip. It saturates rather than overflow.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// Page is the list envelope {data, pagination}.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Parse normalises raw query values. Unparseable or non-positive pages fall
// back to 1, a non-positive limit falls back to DefaultLimit, and pages above
// MaxPage and limits above MaxLimit are clamped.
func Parse(rawPage, rawLimit string) Params {
	page, err := strconv.Atoi(rawPage)
	switch {
	case errors.Is(err, strconv.ErrRange) && page > 0:
		page = MaxPage
	case err != nil || page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// NewMeta computes page navigation for a total row count.
func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if total > 0 && p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}

	m := Meta{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
	if m.HasNextPage {
		next := p.Page + 1
		m.NextPage = &next
	}
	if m.HasPrevPage {
		prev := p.Page - 1
		m.PrevPage = &prev
	}
	return m
}
