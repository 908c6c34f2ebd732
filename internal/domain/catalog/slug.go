package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a display name into a URL slug: accents folded to
// ASCII, lowercased, runs of non-alphanumerics collapsed to a single
// hyphen. "Cascos Integrales" becomes "cascos-integrales".
func Slugify(name string) string {
	folded, _, err := transform.String(deaccent, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// NextSlug appends the collision counter to a base slug: attempt 0
// returns the base itself, attempt 1 returns "base-1", and so on.
func NextSlug(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// BuildSKU derives the base SKU from the category and product names:
// the first three letters of the category and the first six
// alphanumerics of the name, both uppercased. "Cascos" + "Integral
// Pro" yields "CAS-INTEGR".
func BuildSKU(categoryName, productName string) string {
	prefix := alnumPrefix(categoryName, 3)
	if prefix == "" {
		prefix = "PRD"
	}
	namePart := alnumPrefix(productName, 6)
	if namePart == "" {
		namePart = "ITEM"
	}
	return prefix + "-" + namePart
}

// NextSKU appends the zero-padded collision counter: attempt 0 returns
// the base itself, attempt 1 returns "base-001".
func NextSKU(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%03d", base, attempt)
}

func alnumPrefix(s string, n int) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= n {
				break
			}
		}
	}
	return b.String()
}
