package service

import (
	"math"
	"strings"
	"time"

	"github.com/noah-isme/animeaux-api/internal/dto"
)

func paginationMeta(page, pageSize int, total int64) dto.PaginationMeta {
	pagination := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	} else {
		pagination.TotalPages = 1
	}
	return pagination
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func upperAll(values []string) []string {
	result := trimAll(values)
	for i := range result {
		result[i] = strings.ToUpper(result[i])
	}
	return result
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

// optionalID treats a blank identifier as no identifier.
func optionalID(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
