package customer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
)

// foldAccents quita marcas diacríticas y pasa a minúsculas ("Pérez" → "perez").
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// matchesQuery indica si el cliente coincide con el filtro de listado,
// por subcadena sobre nombre o número de cliente.
func matchesQuery(c *entity.Customer, query string) bool {
	q := foldAccents(query)
	return strings.Contains(foldAccents(c.Name), q) ||
		strings.Contains(foldAccents(c.CustomerNumber), q)
}
