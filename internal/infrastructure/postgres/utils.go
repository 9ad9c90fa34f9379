package postgres

import "strings"

// quoteLiteral envuelve un valor de texto en comillas simples para incrustarlo en
// una sentencia del protocolo simple, doblando cada comilla simple interna.
// Todo valor libre que se incruste en texto generado DEBE pasar por aquí; el valor
// almacenado conserva la comilla original ("O'Brien" viaja como 'O''Brien').
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
