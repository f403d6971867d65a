// Package textutil tiene utilidades de normalización de texto para búsqueda.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa el texto a minúsculas sin diacríticos, de modo que "Martíllo"
// y "martillo" comparen igual. Si la transformación falla devuelve la
// entrada en minúsculas tal cual.
func Fold(s string) string {
	// La cadena de transformadores guarda estado interno, se arma por llamada.
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
