package utils

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetPaginationParams normalizes optional offset/limit query values for
// listing endpoints. Callers pass nil for whatever the request did not
// specify; missing or invalid values fall back to the defaults and the
// limit is capped.
func GetPaginationParams(offset, limit *int) (int, int) {
	finalOffset := 0
	if offset != nil && *offset > 0 {
		finalOffset = *offset
	}

	finalLimit := defaultPageSize
	if limit != nil && *limit > 0 {
		finalLimit = min(*limit, maxPageSize)
	}

	return finalOffset, finalLimit
}
