package response

import (
	"fmt"
	"net/http"
	"strconv"

	"pdfhub/internal/models"
)

// ===============================
// PAGINATION PARSING
// ===============================

// PaginationConfig holds pagination parsing configuration
type PaginationConfig struct {
	DefaultPageSize int    `json:"default_page_size"`
	MaxPageSize     int    `json:"max_page_size"`
	PageParam       string `json:"page_param"`
	SizeParam       string `json:"size_param"`
}

// DefaultPaginationConfig returns default pagination configuration
func DefaultPaginationConfig() *PaginationConfig {
	return &PaginationConfig{
		DefaultPageSize: 10,
		MaxPageSize:     50,
		PageParam:       "page",
		SizeParam:       "pageSize",
	}
}

// PaginationParser parses pagination parameters from requests
type PaginationParser struct {
	config *PaginationConfig
}

// NewPaginationParser creates a new pagination parser
func NewPaginationParser(config *PaginationConfig) *PaginationParser {
	if config == nil {
		config = DefaultPaginationConfig()
	}
	return &PaginationParser{config: config}
}

// ParseFromRequest parses pagination parameters from the query string.
func (p *PaginationParser) ParseFromRequest(r *http.Request) (models.PaginationParams, error) {
	query := r.URL.Query()
	params := models.PaginationParams{
		Page:     1,
		PageSize: p.config.DefaultPageSize,
	}

	if pageStr := query.Get(p.config.PageParam); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page parameter: %s", pageStr)
		}
		params.Page = page
	}

	if sizeStr := query.Get(p.config.SizeParam); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return params, fmt.Errorf("invalid pageSize parameter: %s", sizeStr)
		}
		if size > p.config.MaxPageSize {
			return params, fmt.Errorf("pageSize cannot exceed %d", p.config.MaxPageSize)
		}
		params.PageSize = size
	}

	params.Offset = (params.Page - 1) * params.PageSize
	return params, nil
}
