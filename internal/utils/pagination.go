// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
)

type PaginationParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"items_per_page"`
	Search string `json:"search"`
}

type PaginationResult struct {
	Page         int         `json:"page"`
	ItemsPerPage int         `json:"items_per_page"`
	Total        int64       `json:"total"`
	TotalPages   int         `json:"total_pages"`
	NextPage     *int        `json:"next_page"`
	PreviousPage *int        `json:"previous_page"`
	Data         interface{} `json:"data"`
}

// GetPaginationParams reads page, items_per_page (or limit) and search from
// the query string.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limitParam := c.Query("items_per_page")
	if limitParam == "" {
		limitParam = c.DefaultQuery("limit", strconv.Itoa(DefaultItemsPerPage))
	}
	limit, _ := strconv.Atoi(limitParam)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxItemsPerPage {
		limit = DefaultItemsPerPage
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.Limit)))
	}

	result := PaginationResult{
		Page:         params.Page,
		ItemsPerPage: params.Limit,
		Total:        total,
		TotalPages:   totalPages,
		Data:         data,
	}
	if params.Page < totalPages {
		next := params.Page + 1
		result.NextPage = &next
	}
	if params.Page > 1 {
		previous := params.Page - 1
		result.PreviousPage = &previous
	}
	return result
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.ItemsPerPage))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
