package domain

import "testing"

func TestSequenceNext(t *testing.T) {
	first := Sequence{}.Next()
	if first.Value != 2 || first.InvoiceNumber("") != "INV-002" {
		t.Fatalf("expected INV-002 on first run, got %s", first.InvoiceNumber(""))
	}

	seq := Sequence{Value: 6, Present: true}.Next()
	if seq.InvoiceNumber("INV") != "INV-007" {
		t.Fatalf("expected INV-007, got %s", seq.InvoiceNumber("INV"))
	}

	big := Sequence{Value: 999, Present: true}.Next()
	if big.InvoiceNumber("INV") != "INV-1000" {
		t.Fatalf("expected INV-1000, got %s", big.InvoiceNumber("INV"))
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence(" 41 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seq.Present || seq.Value != 41 || seq.String() != "41" {
		t.Fatalf("unexpected sequence %+v", seq)
	}
	if _, err := ParseSequence("forty"); err == nil {
		t.Fatalf("expected error for non-numeric sequence")
	}
}
