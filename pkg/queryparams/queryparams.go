package queryparams

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultSortBy  = "created_at"
	DefaultOrderBy = "desc"
)

// ListParams panel listeleme uç noktalarının ortak sorgu parametreleridir.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Name    string `query:"name"`
	Status  string `query:"status"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
}

func DefaultListParams() ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  DefaultSortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate geçersiz veya eksik değerleri varsayılanlarla değiştirir.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Status = strings.TrimSpace(p.Status)
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

func (p ListParams) CalculateOffset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

func CalculateTotalPages(totalItems int64, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(perPage)))
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResult veri ve toplam kayıt sayısından sayfalama sonucunu oluşturur.
func NewPaginatedResult(data interface{}, params ListParams, totalItems int64) *PaginatedResult {
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalItems,
			TotalPages:  CalculateTotalPages(totalItems, params.PerPage),
		},
	}
}
