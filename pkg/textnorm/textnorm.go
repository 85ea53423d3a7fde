// Package textnorm normaliza texto para búsquedas sin distinción de mayúsculas ni tildes.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold quita marcas diacríticas, pliega mayúsculas y colapsa espacios.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(folder.String(out)), " ")
}

// Contains informa si needle aparece en haystack tras normalizar ambos. Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// Title capitaliza cada palabra (nombres de categoría por defecto).
func Title(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
