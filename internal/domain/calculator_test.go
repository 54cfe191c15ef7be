package domain

import (
	"math"
	"testing"
)

func sampleItems() []LineItem {
	return []LineItem{
		{ID: "1", Description: "Professional Consultation", Quantity: 2, Price: 150},
		{ID: "2", Description: "Web Development Services", Quantity: 10, Price: 85},
	}
}

func TestCalculateTotals_Standard(t *testing.T) {
	totals := CalculateTotals(sampleItems(), 10)

	if totals.Subtotal != 1150 {
		t.Fatalf("expected subtotal 1150, got %v", totals.Subtotal)
	}
	if totals.TaxAmount != 115 {
		t.Fatalf("expected tax 115, got %v", totals.TaxAmount)
	}
	if totals.Total != 1265 {
		t.Fatalf("expected total 1265, got %v", totals.Total)
	}
	if got := FormatMoney("$", totals.Total); got != "$1265.00" {
		t.Fatalf("expected $1265.00, got %s", got)
	}
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil, 18)
	if totals.Subtotal != 0 || totals.TaxAmount != 0 || totals.Total != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestCalculateTotals_DoesNotClamp(t *testing.T) {
	items := []LineItem{{Quantity: -2, Price: 10}, {Quantity: 1, Price: 5}}
	totals := CalculateTotals(items, -10)

	if totals.Subtotal != -15 {
		t.Fatalf("expected subtotal -15, got %v", totals.Subtotal)
	}
	if totals.TaxAmount != 1.5 {
		t.Fatalf("expected tax 1.5, got %v", totals.TaxAmount)
	}
}

func TestCalculateTotals_Properties(t *testing.T) {
	cases := []struct {
		items []LineItem
		rate  float64
	}{
		{[]LineItem{{Quantity: 0.5, Price: 99.99}}, 7.25},
		{[]LineItem{{Quantity: 3, Price: 0.1}, {Quantity: 7, Price: 0.2}}, 18},
		{[]LineItem{{Quantity: 1000000, Price: 0.01}}, 0},
		{[]LineItem{{Quantity: 1.333, Price: 12.5}, {Quantity: 4, Price: 3.75}, {Quantity: 0, Price: 500}}, 12.5},
	}

	for _, tc := range cases {
		totals := CalculateTotals(tc.items, tc.rate)

		var want float64
		for _, item := range tc.items {
			want += item.Quantity * item.Price
		}
		if math.Abs(totals.Subtotal-want) > 1e-9 {
			t.Fatalf("subtotal %v, want %v", totals.Subtotal, want)
		}
		if math.Abs(totals.Total-(totals.Subtotal+totals.Subtotal*tc.rate/100)) > 1e-9 {
			t.Fatalf("total %v does not match subtotal %v at rate %v", totals.Total, totals.Subtotal, tc.rate)
		}

		again := CalculateTotals(tc.items, tc.rate)
		if again != totals {
			t.Fatalf("expected identical results for identical inputs, got %+v and %+v", totals, again)
		}
	}
}

func TestTaxBreakdown(t *testing.T) {
	totals := CalculateTotals(sampleItems(), 10)

	standard := TaxBreakdown(TaxTypeStandard, 10, totals.TaxAmount)
	if len(standard) != 1 || standard[0].Title() != "Tax (10%)" || standard[0].Amount != 115 {
		t.Fatalf("unexpected standard breakdown: %+v", standard)
	}

	igst := TaxBreakdown(TaxTypeIGST, 10, totals.TaxAmount)
	if len(igst) != 1 || igst[0].Title() != "IGST (10%)" || igst[0].Amount != 115 {
		t.Fatalf("unexpected igst breakdown: %+v", igst)
	}

	split := TaxBreakdown(TaxTypeCGSTSGST, 10, totals.TaxAmount)
	if len(split) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(split))
	}
	if split[0].Title() != "CGST (5%)" || split[1].Title() != "SGST (5%)" {
		t.Fatalf("unexpected titles: %q, %q", split[0].Title(), split[1].Title())
	}
	if FormatMoney("$", split[0].Amount) != "$57.50" || FormatMoney("$", split[1].Amount) != "$57.50" {
		t.Fatalf("expected 57.50 each, got %v and %v", split[0].Amount, split[1].Amount)
	}
	if split[0].Amount+split[1].Amount != totals.TaxAmount {
		t.Fatalf("split does not add up to tax amount")
	}
}

func TestTaxBreakdown_OddRate(t *testing.T) {
	split := TaxBreakdown(TaxTypeCGSTSGST, 5, 12.35)
	if split[0].Title() != "CGST (2.5%)" {
		t.Fatalf("expected CGST (2.5%%), got %s", split[0].Title())
	}
	if math.Abs(split[0].Amount+split[1].Amount-12.35) > 0.005 {
		t.Fatalf("rows do not add up to tax amount")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		symbol string
		amount float64
		want   string
	}{
		{"$", 0, "$0.00"},
		{"€", 1234.5, "€1234.50"},
		{"₹", 57.499, "₹57.50"},
		{"CA$", 0.125, "CA$0.13"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.symbol, tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.symbol, tt.amount, got, tt.want)
		}
	}
}

func TestShares(t *testing.T) {
	shares := Shares(Totals{Subtotal: 100, TaxAmount: 0, Total: 100})
	if len(shares) != 1 || shares[0].Name != "Services/Items" {
		t.Fatalf("expected only the services share, got %+v", shares)
	}
	if len(Shares(Totals{})) != 0 {
		t.Fatalf("expected no shares for zero totals")
	}
}

func TestCurrencySymbol(t *testing.T) {
	if got := CurrencySymbol("INR"); got != "₹" {
		t.Fatalf("expected ₹, got %s", got)
	}
	if got := CurrencySymbol("XYZ"); got != "$" {
		t.Fatalf("expected fallback $, got %s", got)
	}
	if got := CurrencySymbol(""); got != "$" {
		t.Fatalf("expected fallback $ for empty code, got %s", got)
	}
}
