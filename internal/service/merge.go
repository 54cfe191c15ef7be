package service

import (
	"time"

	"github.com/andy/lumina/internal/domain"
)

// MergeOptions tunes StartNewInvoice. Zero values select the defaults.
type MergeOptions struct {
	NumberPrefix string
	DueDays      int
}

// StartNewInvoice builds the next invoice from the current one, an optional
// saved business profile and the invoice counter. It returns the new record
// and the advanced counter; nothing is persisted here.
//
// Sender identity and tax defaults come from the profile when set, then from
// the current invoice, then from the default invoice. Recipient details, notes,
// cc/bcc and items are reset.
func StartNewInvoice(
	current domain.InvoiceData,
	profile *domain.BusinessProfile,
	seq domain.Sequence,
	now time.Time,
	opts MergeOptions,
) (domain.InvoiceData, domain.Sequence) {
	dueDays := opts.DueDays
	if dueDays <= 0 {
		dueDays = domain.DefaultDueDays
	}

	next := seq.Next()
	def := domain.DefaultInvoice(now)

	var p domain.BusinessProfile
	if profile != nil {
		p = *profile
	}

	inv := def
	inv.InvoiceNumber = next.InvoiceNumber(opts.NumberPrefix)
	inv.Date = now.Format(domain.DateLayout)
	inv.DueDate = now.AddDate(0, 0, dueDays).Format(domain.DateLayout)

	inv.SenderName = firstNonEmpty(p.SenderName, current.SenderName, def.SenderName)
	inv.SenderEmail = firstNonEmpty(p.SenderEmail, current.SenderEmail, def.SenderEmail)
	inv.SenderAddress = firstNonEmpty(p.SenderAddress, current.SenderAddress, def.SenderAddress)
	inv.Logo = firstNonEmpty(p.Logo, current.Logo, def.Logo)
	inv.Currency = firstNonEmpty(p.Currency, current.Currency, def.Currency)
	inv.TaxType = domain.TaxType(firstNonEmpty(string(p.TaxType), string(current.TaxType), string(def.TaxType)))

	// Presence, not truthiness: a saved rate of 0 wins
	inv.TaxRate = current.TaxRate
	if p.TaxRate != nil {
		inv.TaxRate = *p.TaxRate
	}

	inv.RecipientName = ""
	inv.RecipientEmail = ""
	inv.RecipientAddress = ""
	inv.Notes = ""
	inv.CCEmail = ""
	inv.BCCEmail = ""
	inv.Items = []domain.LineItem{domain.NewLineItem("New Service")}

	return inv, next
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
