package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestGetPaginationParams(t *testing.T) {
	t.Run("Defaults When Nil", func(t *testing.T) {
		offset, limit := GetPaginationParams(nil, nil)
		assert.Equal(t, 0, offset)
		assert.Equal(t, defaultPageSize, limit)
	})

	t.Run("Uses Provided Values", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(40), intPtr(10))
		assert.Equal(t, 40, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("Caps Limit", func(t *testing.T) {
		_, limit := GetPaginationParams(nil, intPtr(1000))
		assert.Equal(t, maxPageSize, limit)
	})

	t.Run("Ignores Invalid Values", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(-5), intPtr(-1))
		assert.Equal(t, 0, offset)
		assert.Equal(t, defaultPageSize, limit)
	})
}
