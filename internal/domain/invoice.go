package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for invoice dates
const DateLayout = "2006-01-02"

// DefaultDueDays is the number of days between issue date and due date
const DefaultDueDays = 14

type TaxType string

const (
	TaxTypeStandard TaxType = "standard"
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
	TaxTypeIGST     TaxType = "igst"
)

// TaxTypes lists the supported tax types in display order
var TaxTypes = []TaxType{TaxTypeStandard, TaxTypeCGSTSGST, TaxTypeIGST}

// ParseTaxType converts a string to a TaxType
func ParseTaxType(s string) (TaxType, error) {
	switch t := TaxType(strings.ToLower(strings.TrimSpace(s))); t {
	case TaxTypeStandard, TaxTypeCGSTSGST, TaxTypeIGST:
		return t, nil
	case "":
		return TaxTypeStandard, nil
	default:
		return "", fmt.Errorf("unknown tax type %q", s)
	}
}

// UnmarshalText rejects unknown tax types so a damaged record is treated as corrupt
func (t *TaxType) UnmarshalText(b []byte) error {
	parsed, err := ParseTaxType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Label returns the human-readable tax type name
func (t TaxType) Label() string {
	switch t {
	case TaxTypeCGSTSGST:
		return "CGST + SGST"
	case TaxTypeIGST:
		return "IGST"
	default:
		return "Standard"
	}
}

type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// NewLineItem creates a line item with quantity 1 and price 0
func NewLineItem(description string) LineItem {
	return LineItem{
		ID:          uuid.NewString(),
		Description: description,
		Quantity:    1,
		Price:       0,
	}
}

// Amount returns quantity * price
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Price
}

type InvoiceData struct {
	InvoiceNumber    string     `json:"invoiceNumber"`
	Date             string     `json:"date"`
	DueDate          string     `json:"dueDate"`
	SenderName       string     `json:"senderName"`
	SenderEmail      string     `json:"senderEmail"`
	SenderAddress    string     `json:"senderAddress"`
	RecipientName    string     `json:"recipientName"`
	RecipientEmail   string     `json:"recipientEmail"`
	RecipientAddress string     `json:"recipientAddress"`
	Items            []LineItem `json:"items"`
	Notes            string     `json:"notes"`
	Terms            string     `json:"terms"`
	Currency         string     `json:"currency"`
	TaxRate          float64    `json:"taxRate"`
	TaxType          TaxType    `json:"taxType"`
	Logo             string     `json:"logo,omitempty"`
	CCEmail          string     `json:"ccEmail,omitempty"`
	BCCEmail         string     `json:"bccEmail,omitempty"`
}

// DefaultInvoice returns the built-in sample invoice dated relative to now
func DefaultInvoice(now time.Time) InvoiceData {
	return InvoiceData{
		InvoiceNumber:    "INV-001",
		Date:             now.Format(DateLayout),
		DueDate:          now.AddDate(0, 0, DefaultDueDays).Format(DateLayout),
		SenderName:       "Your Business Name",
		SenderEmail:      "you@example.com",
		SenderAddress:    "123 Business Rd, Tech City",
		RecipientName:    "Client Name",
		RecipientEmail:   "client@example.com",
		RecipientAddress: "456 Client Ln, Market Town",
		Items: []LineItem{
			{ID: "1", Description: "Professional Consultation", Quantity: 2, Price: 150},
			{ID: "2", Description: "Web Development Services", Quantity: 10, Price: 85},
		},
		Notes:    "Thank you for your business!",
		Terms:    "Payment is due within 14 days.",
		Currency: "USD",
		TaxRate:  10,
		TaxType:  TaxTypeStandard,
	}
}

// Clone returns a copy that shares no item storage with the receiver
func (inv InvoiceData) Clone() InvoiceData {
	out := inv
	out.Items = make([]LineItem, len(inv.Items))
	copy(out.Items, inv.Items)
	return out
}

// Totals computes the invoice totals
func (inv InvoiceData) Totals() Totals {
	return CalculateTotals(inv.Items, inv.TaxRate)
}

// Symbol returns the display symbol of the invoice currency
func (inv InvoiceData) Symbol() string {
	return CurrencySymbol(inv.Currency)
}

// SetTaxRate stores the tax rate, clamping negatives to zero
func (inv *InvoiceData) SetTaxRate(rate float64) {
	inv.TaxRate = clampNonNegative(rate)
}

// AddItem appends a fresh "New Item" row and returns it
func (inv *InvoiceData) AddItem() LineItem {
	item := NewLineItem("New Item")
	inv.Items = append(inv.Items, item)
	return item
}

// RemoveItem deletes the item with the given id
func (inv *InvoiceData) RemoveItem(id string) error {
	for i, item := range inv.Items {
		if item.ID == id {
			inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// ItemByID returns the item with the given id
func (inv InvoiceData) ItemByID(id string) (LineItem, bool) {
	for _, item := range inv.Items {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// SetItemDescription updates an item description
func (inv *InvoiceData) SetItemDescription(id, description string) error {
	return inv.updateItem(id, func(li *LineItem) { li.Description = description })
}

// SetItemQuantity updates an item quantity, clamping negatives to zero
func (inv *InvoiceData) SetItemQuantity(id string, quantity float64) error {
	return inv.updateItem(id, func(li *LineItem) { li.Quantity = clampNonNegative(quantity) })
}

// SetItemPrice updates an item price, clamping negatives to zero
func (inv *InvoiceData) SetItemPrice(id string, price float64) error {
	return inv.updateItem(id, func(li *LineItem) { li.Price = clampNonNegative(price) })
}

func (inv *InvoiceData) updateItem(id string, fn func(*LineItem)) error {
	items := make([]LineItem, len(inv.Items))
	copy(items, inv.Items)
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
			inv.Items = items
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// ClientDetails returns the recipient as a saved client
func (inv InvoiceData) ClientDetails() SavedClient {
	return SavedClient{
		Name:    strings.TrimSpace(inv.RecipientName),
		Email:   strings.TrimSpace(inv.RecipientEmail),
		Address: strings.TrimSpace(inv.RecipientAddress),
	}
}

// ApplyClient copies a saved client into the recipient fields
func (inv *InvoiceData) ApplyClient(c SavedClient) {
	inv.RecipientName = c.Name
	inv.RecipientEmail = c.Email
	inv.RecipientAddress = c.Address
}

// Validate returns an error if the invoice is invalid
func (inv InvoiceData) Validate() error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return errors.New("invoice number is required")
	}
	if _, err := time.Parse(DateLayout, inv.Date); err != nil {
		return fmt.Errorf("invalid invoice date %q", inv.Date)
	}
	if _, err := time.Parse(DateLayout, inv.DueDate); err != nil {
		return fmt.Errorf("invalid due date %q", inv.DueDate)
	}
	if inv.TaxRate < 0 {
		return errors.New("tax rate cannot be negative")
	}
	for _, item := range inv.Items {
		if item.Quantity < 0 || item.Price < 0 {
			return fmt.Errorf("item %s has a negative quantity or price", item.ID)
		}
	}
	return nil
}

// Non-finite values cannot be stored and are treated as 0
func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
