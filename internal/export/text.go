package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/andy/lumina/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderText writes a plain-text rendering of the invoice to w
func RenderText(w io.Writer, inv domain.InvoiceData) error {
	symbol := inv.Symbol()
	totals := inv.Totals()

	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s    Due: %s\n\n", inv.Date, inv.DueDate)

	fmt.Fprintf(&b, "From:    %s <%s>\n", inv.SenderName, inv.SenderEmail)
	writeIndented(&b, inv.SenderAddress)
	fmt.Fprintf(&b, "Bill to: %s <%s>\n", inv.RecipientName, inv.RecipientEmail)
	writeIndented(&b, inv.RecipientAddress)
	b.WriteString("\n")

	items := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Description", "Qty", "Price", "Amount").
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > 0 {
				return lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, item := range inv.Items {
		items.Row(
			item.Description,
			domain.FormatRate(item.Quantity),
			domain.FormatMoney(symbol, item.Price),
			domain.FormatMoney(symbol, item.Amount()),
		)
	}
	b.WriteString(items.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%-20s %14s\n", "Subtotal", domain.FormatMoney(symbol, totals.Subtotal))
	for _, line := range domain.TaxBreakdown(inv.TaxType, inv.TaxRate, totals.TaxAmount) {
		fmt.Fprintf(&b, "%-20s %14s\n", line.Title(), domain.FormatMoney(symbol, line.Amount))
	}
	fmt.Fprintf(&b, "%-20s %14s\n", "Total", domain.FormatMoney(symbol, totals.Total))

	if strings.TrimSpace(inv.Notes) != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", inv.Notes)
	}
	if strings.TrimSpace(inv.Terms) != "" {
		fmt.Fprintf(&b, "\nTerms & Conditions:\n%s\n", inv.Terms)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeIndented(b *strings.Builder, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "         %s\n", line)
	}
}
