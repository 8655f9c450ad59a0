package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple lowercase",
			input: "Skincare",
			want:  "skincare",
		},
		{
			name:  "Spaces become hyphens",
			input: "Son môi lì",
			want:  "son-moi-li",
		},
		{
			name:  "Vietnamese diacritics folded",
			input: "Chăm sóc da mặt",
			want:  "cham-soc-da-mat",
		},
		{
			name:  "dj letter handled",
			input: "Đồ trang điểm",
			want:  "do-trang-diem",
		},
		{
			name:  "Special characters collapsed",
			input: "Kem chống nắng SPF50+ (mới!)",
			want:  "kem-chong-nang-spf50-moi",
		},
		{
			name:  "Leading and trailing separators trimmed",
			input: "  --Hot Deal--  ",
			want:  "hot-deal",
		},
		{
			name:  "Numbers preserved",
			input: "Vitamin C 20%",
			want:  "vitamin-c-20",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyMaxLength(t *testing.T) {
	long := strings.Repeat("tinh chat duong am ", 10)
	slug := Slugify(long)

	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestSlugWithSuffix(t *testing.T) {
	assert.Equal(t, "skincare", SlugWithSuffix("skincare", 0))
	assert.Equal(t, "skincare-1", SlugWithSuffix("skincare", 1))
	assert.Equal(t, "skincare-12", SlugWithSuffix("skincare", 12))
}

func TestSlugWithSuffixKeepsMaxLength(t *testing.T) {
	base := strings.Repeat("a", MaxSlugLength)
	slug := SlugWithSuffix(base, 7)

	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.True(t, strings.HasSuffix(slug, "-7"))
}
