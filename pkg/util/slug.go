package util

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated slugs so they stay usable in URLs and
// fit the indexed varchar columns.
const MaxSlugLength = 50

var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify derives a URL-safe slug from a display name. Vietnamese names
// fold to plain ASCII ("Sữa Rửa Mặt" -> "sua-rua-mat"); anything outside
// letters and digits collapses into single hyphens.
func Slugify(name string) string {
	folded, _, err := transform.String(diacriticFolder, name)
	if err != nil {
		folded = name
	}
	// Đ/đ survive NFD decomposition, map them by hand
	folded = strings.NewReplacer("đ", "d", "Đ", "D").Replace(folded)
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.Trim(slug[:MaxSlugLength], "-")
	}
	return slug
}

// SlugWithSuffix appends an incrementing numeric suffix used for collision
// resolution. Suffix 0 returns the base slug unchanged; longer bases are
// trimmed so the suffixed slug still fits MaxSlugLength.
func SlugWithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > MaxSlugLength {
		base = strings.Trim(base[:MaxSlugLength-len(suffix)], "-")
	}
	return base + suffix
}
