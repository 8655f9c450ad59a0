package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	number := GenerateOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^ORD-260315-\d{4}$`), number)
}

func TestGenerateOrderNumberFormatIsStable(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		assert.Len(t, number, 15)
		assert.Regexp(t, `^ORD-251201-\d{4}$`, number)
	}
}
