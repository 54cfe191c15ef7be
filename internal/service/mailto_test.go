package service

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/andy/lumina/internal/domain"
)

func mailInvoice() domain.InvoiceData {
	inv := domain.DefaultInvoice(fixedNow)
	inv.RecipientName = "Jane Doe"
	inv.RecipientEmail = "jane@client.test"
	return inv
}

func bodyParam(t *testing.T, uri string) (string, bool) {
	t.Helper()
	_, query, _ := strings.Cut(uri, "?")
	for _, p := range strings.Split(query, "&") {
		if v, ok := strings.CutPrefix(p, "body="); ok {
			decoded, err := url.PathUnescape(v)
			if err != nil {
				t.Fatalf("body is not valid percent-encoding: %v", err)
			}
			return decoded, true
		}
	}
	return "", false
}

func TestBuildMailto_MissingRecipient(t *testing.T) {
	inv := mailInvoice()
	inv.RecipientEmail = ""

	res, err := BuildMailto(inv, 100)
	if !errors.Is(err, ErrMissingRecipient) {
		t.Fatalf("expected ErrMissingRecipient, got %v", err)
	}
	if res.URI != "" {
		t.Fatalf("expected no URI, got %q", res.URI)
	}
}

func TestBuildMailto_Basic(t *testing.T) {
	inv := mailInvoice()
	res, err := BuildMailto(inv, inv.Totals().Total)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Warning != nil || res.Truncated {
		t.Fatalf("expected a complete link, got %+v", res)
	}

	wantPrefix := "mailto:jane@client.test?subject=Invoice%20INV-001%20from%20Your%20Business%20Name&body="
	if !strings.HasPrefix(res.URI, wantPrefix) {
		t.Fatalf("unexpected link prefix: %s", res.URI)
	}

	body, ok := bodyParam(t, res.URI)
	if !ok {
		t.Fatalf("expected a body parameter")
	}
	if !strings.HasPrefix(body, "Dear Jane Doe,\n\nPlease find attached invoice #INV-001 due on ") {
		t.Fatalf("unexpected body: %q", body)
	}
	if !strings.Contains(body, "Total Amount: $1265.00") {
		t.Fatalf("expected formatted total in body: %q", body)
	}
	if strings.Contains(res.URI, "cc=") {
		t.Fatalf("expected no cc/bcc params")
	}
}

func TestBuildMailto_CCAndBCC(t *testing.T) {
	inv := mailInvoice()
	inv.CCEmail = "boss+ap@client.test"
	inv.BCCEmail = "me@acme.test"

	res, err := BuildMailto(inv, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.URI, "?cc=boss%2Bap%40client.test&bcc=me%40acme.test&subject=") {
		t.Fatalf("expected encoded cc and bcc before subject: %s", res.URI)
	}
}

func TestBuildMailto_LongNotesAreTruncated(t *testing.T) {
	inv := mailInvoice()
	inv.Notes = strings.Repeat("n", 10000)

	res, err := BuildMailto(inv, inv.Totals().Total)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.URI) > MaxMailtoLength {
		t.Fatalf("link is %d chars, limit %d", len(res.URI), MaxMailtoLength)
	}
	if !res.Truncated {
		t.Fatalf("expected Truncated to be set")
	}
	body, _ := bodyParam(t, res.URI)
	if !strings.HasSuffix(body, "...\n[Email truncated]") {
		t.Fatalf("expected truncation marker at end of body, got %q", body[len(body)-30:])
	}
}

func TestBuildMailto_TruncationLength(t *testing.T) {
	inv := mailInvoice()
	inv.Notes = strings.Repeat("x", 5000)

	res, _ := BuildMailto(inv, 0)
	head, _, _ := strings.Cut(res.URI, "&body=")
	remaining := MaxMailtoLength - (len(head) + len("&body="))
	body, _ := bodyParam(t, res.URI)

	want := remaining*2/3 + len("...\n[Email truncated]")
	if utf8.RuneCountInString(body) != want {
		t.Fatalf("expected body of %d chars, got %d", want, utf8.RuneCountInString(body))
	}
}

func TestBuildMailto_MultiByteStillFits(t *testing.T) {
	inv := mailInvoice()
	inv.Notes = strings.Repeat("₹€", 3000)

	res, err := BuildMailto(inv, 99.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.URI) > MaxMailtoLength {
		t.Fatalf("link is %d chars, limit %d", len(res.URI), MaxMailtoLength)
	}
	body, _ := bodyParam(t, res.URI)
	if !strings.HasSuffix(body, "[Email truncated]") {
		t.Fatalf("expected truncation marker")
	}
}

func TestBuildMailto_NoRoomForBody(t *testing.T) {
	inv := mailInvoice()
	inv.SenderName = strings.Repeat("Very Long Business Name ", 60)

	res, err := BuildMailto(inv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(res.Warning, ErrBodyTooLong) {
		t.Fatalf("expected ErrBodyTooLong warning, got %v", res.Warning)
	}
	if strings.Contains(res.URI, "body=") {
		t.Fatalf("expected no body parameter")
	}
	if !strings.Contains(res.URI, "subject=") {
		t.Fatalf("expected subject parameter")
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"a b":          "a%20b",
		"x@y.z":        "x%40y.z",
		"line\nbreak":  "line%0Abreak",
		"-_.!~*'()":    "-_.!~*'()",
		"₹":            "%E2%82%B9",
		"a&b=c?d#e/f+": "a%26b%3Dc%3Fd%23e%2Ff%2B",
	}
	for in, want := range tests {
		if got := EncodeURIComponent(in); got != want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}
