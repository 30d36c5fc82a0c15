package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyBRL formata um valor em reais.
// Exemplo: 1234.5 -> "R$ 1.234,50"
func FormatCurrencyBRL(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	// Separador de milhar
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + strings.Join(groups, ".") + "," + decimalPart
}
