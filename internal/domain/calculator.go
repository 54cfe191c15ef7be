package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// CalculateTotals sums quantity * price over items and applies a percentage tax rate.
// Inputs are taken as plain numbers; clamping is the caller's job.
func CalculateTotals(items []LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Price
	}
	taxAmount := subtotal * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

// TaxLine is one displayed tax row
type TaxLine struct {
	Label  string
	Rate   float64
	Amount float64
}

// Title renders the row label with its rate, e.g. "CGST (5%)"
func (l TaxLine) Title() string {
	return l.Label + " (" + FormatRate(l.Rate) + "%)"
}

// TaxBreakdown splits a computed tax amount into display rows for the tax type.
// The amounts always add up to taxAmount.
func TaxBreakdown(taxType TaxType, taxRate, taxAmount float64) []TaxLine {
	switch taxType {
	case TaxTypeCGSTSGST:
		half := taxAmount / 2
		return []TaxLine{
			{Label: "CGST", Rate: taxRate / 2, Amount: half},
			{Label: "SGST", Rate: taxRate / 2, Amount: half},
		}
	case TaxTypeIGST:
		return []TaxLine{{Label: "IGST", Rate: taxRate, Amount: taxAmount}}
	default:
		return []TaxLine{{Label: "Tax", Rate: taxRate, Amount: taxAmount}}
	}
}

// FormatMoney renders an amount with exactly two decimals after the symbol
func FormatMoney(symbol string, amount float64) string {
	return symbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatRate renders a percentage rate in its shortest form (10, 2.5)
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// Share is one slice of the subtotal/tax split
type Share struct {
	Name  string
	Value float64
}

// Shares returns the non-zero services and tax portions of the totals
func Shares(t Totals) []Share {
	shares := make([]Share, 0, 2)
	if t.Subtotal > 0 {
		shares = append(shares, Share{Name: "Services/Items", Value: t.Subtotal})
	}
	if t.TaxAmount > 0 {
		shares = append(shares, Share{Name: "Tax", Value: t.TaxAmount})
	}
	return shares
}
