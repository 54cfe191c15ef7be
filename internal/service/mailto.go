package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andy/lumina/internal/domain"
)

// MaxMailtoLength is the longest mailto URI handed to a mail client
const MaxMailtoLength = 1800

// Below this many spare characters the body is left out entirely
const minBodyBudget = 100

// Appended to a shortened body before it is encoded
const truncationMarker = "...\n[Email truncated]"

var (
	ErrMissingRecipient = errors.New("please enter a recipient email address")
	ErrBodyTooLong      = errors.New("email body is too long for automatic generation; opening email with subject only")
)

// MailtoResult is a composed mailto link. Warning is set (to ErrBodyTooLong)
// when the body had to be dropped; the URI is still usable.
type MailtoResult struct {
	URI       string
	Truncated bool
	Warning   error
}

// BuildMailto composes a mailto link for the invoice within MaxMailtoLength
func BuildMailto(inv domain.InvoiceData, total float64) (MailtoResult, error) {
	return BuildMailtoWithLimit(inv, total, MaxMailtoLength)
}

// BuildMailtoWithLimit composes a mailto link no longer than limit characters
func BuildMailtoWithLimit(inv domain.InvoiceData, total float64, limit int) (MailtoResult, error) {
	if strings.TrimSpace(inv.RecipientEmail) == "" {
		return MailtoResult{}, ErrMissingRecipient
	}

	base := "mailto:" + inv.RecipientEmail
	params := make([]string, 0, 4)
	if inv.CCEmail != "" {
		params = append(params, "cc="+EncodeURIComponent(inv.CCEmail))
	}
	if inv.BCCEmail != "" {
		params = append(params, "bcc="+EncodeURIComponent(inv.BCCEmail))
	}
	params = append(params, "subject="+EncodeURIComponent(MailSubject(inv)))

	head := base + "?" + strings.Join(params, "&")
	// "&body=" plus the "?" already counted in head
	used := utf8.RuneCountInString(head) + len("&body=")
	remaining := limit - used

	if remaining <= minBodyBudget {
		return MailtoResult{URI: head, Warning: ErrBodyTooLong}, nil
	}

	body := []rune(MailBody(inv, total))
	keep := remaining * 2 / 3 // floor(remaining / 1.5)
	if keep > len(body) {
		keep = len(body)
	}

	uri := head + "&body=" + encodeBody(body, keep)
	// Multi-byte text can expand past the 1.5 estimate; shrink until it fits
	for n := utf8.RuneCountInString(uri); n > limit; n = utf8.RuneCountInString(uri) {
		if keep == 0 {
			return MailtoResult{URI: head, Warning: ErrBodyTooLong}, nil
		}
		// A rune encodes to at most 12 characters
		step := (n - limit + 11) / 12
		keep -= step
		if keep < 0 {
			keep = 0
		}
		uri = head + "&body=" + encodeBody(body, keep)
	}

	return MailtoResult{URI: uri, Truncated: keep < len(body)}, nil
}

func encodeBody(body []rune, keep int) string {
	if keep >= len(body) {
		return EncodeURIComponent(string(body))
	}
	return EncodeURIComponent(string(body[:keep]) + truncationMarker)
}

// MailSubject is the subject line of an invoice email
func MailSubject(inv domain.InvoiceData) string {
	return fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, inv.SenderName)
}

// MailBody is the plain-text body of an invoice email
func MailBody(inv domain.InvoiceData, total float64) string {
	return fmt.Sprintf(
		"Dear %s,\n\nPlease find attached invoice #%s due on %s.\n\nTotal Amount: %s\n\nNotes:\n%s\n\nTerms:\n%s\n\nRegards,\n%s",
		inv.RecipientName,
		inv.InvoiceNumber,
		inv.DueDate,
		domain.FormatMoney(inv.Symbol(), total),
		inv.Notes,
		inv.Terms,
		inv.SenderName,
	)
}

// EncodeURIComponent percent-encodes s, leaving only A-Z a-z 0-9 and - _ . ! ~ * ' ( ) as is
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
