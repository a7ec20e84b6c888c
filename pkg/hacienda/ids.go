package hacienda

import (
	"strings"
	"unicode"
)

// StripHyphens elimina los guiones de un identificador (número de control,
// código de generación, NIT). Hacienda los recibe sin separadores.
func StripHyphens(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}

// CleanTaxID limpia un NIT/NRC: sin guiones ni barras.
// "0614-150390-102-3" -> "06141503901023".
func CleanTaxID(s string) string {
	return strings.ReplaceAll(StripHyphens(s), "/", "")
}

// IsValidDUI indica si el DUI (con o sin guion) tiene 9 dígitos y su dígito verificador es correcto.
// Algoritmo: suma ponderada 9..2 sobre los 8 primeros dígitos, verificador = (10 - suma%10) % 10.
func IsValidDUI(dui string) bool {
	digits := extractDigits(dui)
	if len(digits) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(digits[i]-'0') * (9 - i)
	}
	check := (10 - sum%10) % 10
	return int(digits[8]-'0') == check
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
