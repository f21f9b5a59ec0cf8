package postgres

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeSearch quita tildes y diacríticos del término de búsqueda, de modo
// que "café" y "cafe" produzcan el mismo patrón ILIKE.
func normalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}

// likePattern arma el patrón ILIKE a partir del término ya normalizado.
func likePattern(search string) string {
	return "%" + normalizeSearch(search) + "%"
}
