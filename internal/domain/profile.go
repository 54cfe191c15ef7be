package domain

// BusinessProfile is the issuing business's durable identity and billing defaults.
// TaxRate is a pointer so a saved rate of 0 is distinguishable from no rate.
type BusinessProfile struct {
	SenderName    string   `json:"senderName"`
	SenderEmail   string   `json:"senderEmail"`
	SenderAddress string   `json:"senderAddress"`
	Logo          string   `json:"logo,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	TaxRate       *float64 `json:"taxRate,omitempty"`
	TaxType       TaxType  `json:"taxType,omitempty"`
}

// ProfileFromInvoice captures the sender identity and tax defaults of an invoice
func ProfileFromInvoice(inv InvoiceData) BusinessProfile {
	rate := inv.TaxRate
	return BusinessProfile{
		SenderName:    inv.SenderName,
		SenderEmail:   inv.SenderEmail,
		SenderAddress: inv.SenderAddress,
		Logo:          inv.Logo,
		Currency:      inv.Currency,
		TaxRate:       &rate,
		TaxType:       inv.TaxType,
	}
}

// ApplyTo loads the profile onto an invoice. Identity fields are taken as saved,
// even when empty; currency and tax type fall back to USD/standard and the tax
// rate is kept from the invoice when the profile has none.
func (p BusinessProfile) ApplyTo(inv InvoiceData) InvoiceData {
	out := inv.Clone()
	out.SenderName = p.SenderName
	out.SenderEmail = p.SenderEmail
	out.SenderAddress = p.SenderAddress
	out.Logo = p.Logo
	out.Currency = p.Currency
	if out.Currency == "" {
		out.Currency = "USD"
	}
	if p.TaxRate != nil {
		out.TaxRate = *p.TaxRate
	}
	out.TaxType = p.TaxType
	if out.TaxType == "" {
		out.TaxType = TaxTypeStandard
	}
	return out
}
