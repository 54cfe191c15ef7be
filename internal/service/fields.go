package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andy/lumina/internal/domain"
)

// Field is an editable invoice header field
type Field struct {
	Name  string
	Label string
}

// Fields lists the editable invoice fields in display order
var Fields = []Field{
	{"number", "Invoice #"},
	{"date", "Date"},
	{"due", "Due Date"},
	{"sender-name", "From"},
	{"sender-email", "From Email"},
	{"sender-address", "From Address"},
	{"recipient-name", "Bill To"},
	{"recipient-email", "Bill To Email"},
	{"recipient-address", "Bill To Address"},
	{"cc", "CC"},
	{"bcc", "BCC"},
	{"currency", "Currency"},
	{"tax-rate", "Tax Rate (%)"},
	{"tax-type", "Tax Type"},
	{"notes", "Notes"},
	{"terms", "Terms"},
}

// FieldNames returns the names of Fields
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// FieldValue returns the editable text of a field
func FieldValue(inv domain.InvoiceData, field string) string {
	switch field {
	case "number":
		return inv.InvoiceNumber
	case "date":
		return inv.Date
	case "due":
		return inv.DueDate
	case "sender-name":
		return inv.SenderName
	case "sender-email":
		return inv.SenderEmail
	case "sender-address":
		return inv.SenderAddress
	case "recipient-name":
		return inv.RecipientName
	case "recipient-email":
		return inv.RecipientEmail
	case "recipient-address":
		return inv.RecipientAddress
	case "cc":
		return inv.CCEmail
	case "bcc":
		return inv.BCCEmail
	case "currency":
		return inv.Currency
	case "tax-rate":
		return domain.FormatRate(inv.TaxRate)
	case "tax-type":
		return string(inv.TaxType)
	case "notes":
		return inv.Notes
	case "terms":
		return inv.Terms
	}
	return ""
}

// SetField applies a single named field edit to inv
func SetField(inv *domain.InvoiceData, field, value string) error {
	switch strings.ToLower(field) {
	case "number":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invoice number cannot be empty")
		}
		inv.InvoiceNumber = value
	case "date":
		d, err := ParseDate(value, time.Now())
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		inv.Date = d
	case "due", "due-date":
		d, err := ParseDate(value, time.Now())
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		inv.DueDate = d
	case "sender-name":
		inv.SenderName = value
	case "sender-email":
		inv.SenderEmail = value
	case "sender-address":
		inv.SenderAddress = value
	case "recipient-name":
		inv.RecipientName = value
	case "recipient-email":
		inv.RecipientEmail = value
	case "recipient-address":
		inv.RecipientAddress = value
	case "cc":
		inv.CCEmail = value
	case "bcc":
		inv.BCCEmail = value
	case "currency":
		c, ok := domain.LookupCurrency(strings.ToUpper(strings.TrimSpace(value)))
		if !ok {
			return fmt.Errorf("unknown currency %q", value)
		}
		inv.Currency = c.Code
	case "tax-rate":
		rate, err := ParseAmount(value)
		if err != nil {
			return fmt.Errorf("invalid tax rate: %w", err)
		}
		inv.SetTaxRate(rate)
	case "tax-type":
		t, err := domain.ParseTaxType(value)
		if err != nil {
			return err
		}
		inv.TaxType = t
	case "notes":
		inv.Notes = value
	case "terms":
		inv.Terms = value
	default:
		return fmt.Errorf("unknown field %q (valid fields: %s)", field, strings.Join(FieldNames(), ", "))
	}
	return nil
}

// SetItemField applies a description, qty or price edit to the item with id
func SetItemField(inv *domain.InvoiceData, id, field, value string) error {
	switch strings.ToLower(field) {
	case "description", "desc":
		return inv.SetItemDescription(id, value)
	case "qty", "quantity":
		qty, err := ParseAmount(value)
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		return inv.SetItemQuantity(id, qty)
	case "price":
		price, err := ParseAmount(value)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		return inv.SetItemPrice(id, price)
	default:
		return fmt.Errorf("unknown item field %q (valid fields: description, qty, price)", field)
	}
}

// ParseDate accepts YYYY-MM-DD, "today" or a +N day offset from now
func ParseDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "today":
		return now.Format(domain.DateLayout), nil
	case strings.HasPrefix(s, "+"):
		days, err := strconv.Atoi(s[1:])
		if err != nil {
			return "", fmt.Errorf("invalid day offset %q", s)
		}
		return now.AddDate(0, 0, days).Format(domain.DateLayout), nil
	}

	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t.Format(domain.DateLayout), nil
}

// ParseAmount parses a number; an empty string is zero
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
