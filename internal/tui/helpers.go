package tui

import (
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/domain"
)

// formatMoney formats money as "<symbol>X,XXX.XX" with comma separators
func formatMoney(symbol string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := symbol
	if negative {
		prefix = "-" + symbol
	}
	return prefix + string(result) + decPart
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// oneLine collapses newlines so multi-line values fit a list row
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sharesBar renders the services/tax split as a proportional bar of the given width
func sharesBar(shares []domain.Share, width int) string {
	if width <= 0 || len(shares) == 0 {
		return ""
	}

	var total float64
	for _, s := range shares {
		total += s.Value
	}
	if total <= 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for i, s := range shares {
		n := int(s.Value / total * float64(width))
		if i == len(shares)-1 {
			n = width - used
		}
		used += n

		style := servicesStyle
		if s.Name == "Tax" {
			style = taxStyle
		}
		b.WriteString(style.Render(strings.Repeat("█", n)))
	}
	return b.String()
}
