package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/lumina/internal/domain"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// PDFRenderer draws invoices as A4 PDF documents
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// FileName returns the PDF file name for an invoice
func FileName(inv domain.InvoiceData) string {
	number := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(inv.InvoiceNumber))
	if number == "" {
		number = "draft"
	}
	return "Invoice-" + number + ".pdf"
}

// WriteFile renders the invoice into dir and returns the file path
func (r *PDFRenderer) WriteFile(dir string, inv domain.InvoiceData) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, inv); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(inv))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

// Render writes the invoice PDF to w
func (r *PDFRenderer) Render(w io.Writer, inv domain.InvoiceData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Invoice "+inv.InvoiceNumber), false)
	pdf.SetAuthor(tr(inv.SenderName), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	symbol := pdfSymbol(inv)
	totals := inv.Totals()

	// Header
	top := pdf.GetY()
	if inv.Logo != "" {
		drawLogo(pdf, inv.Logo)
	}
	pdf.SetXY(110, top)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(85, 10, "INVOICE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(85, 6, tr("# "+inv.InvoiceNumber), "", 2, "R", false, 0, "")
	pdf.CellFormat(85, 6, "Date: "+inv.Date, "", 2, "R", false, 0, "")
	pdf.CellFormat(85, 6, "Due: "+inv.DueDate, "", 2, "R", false, 0, "")
	pdf.SetY(top + 40)

	// Parties
	partyY := pdf.GetY()
	drawParty(pdf, tr, 15, partyY, "FROM", inv.SenderName, inv.SenderEmail, inv.SenderAddress)
	drawParty(pdf, tr, 110, partyY, "BILL TO", inv.RecipientName, inv.RecipientEmail, inv.RecipientAddress)
	pdf.SetXY(15, partyY+32)

	// Items
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 245)
	pdf.CellFormat(95, 8, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(95, 7, tr(item.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, domain.FormatRate(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, tr(domain.FormatMoney(symbol, item.Price)), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(domain.FormatMoney(symbol, item.Amount())), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(110)
		pdf.CellFormat(50, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, tr(value), "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", domain.FormatMoney(symbol, totals.Subtotal), false)
	for _, line := range domain.TaxBreakdown(inv.TaxType, inv.TaxRate, totals.TaxAmount) {
		totalRow(line.Title(), domain.FormatMoney(symbol, line.Amount), false)
	}
	totalRow("Total", domain.FormatMoney(symbol, totals.Total), true)
	pdf.Ln(6)

	// Notes and terms
	for _, section := range []struct{ title, body string }{
		{"Notes", inv.Notes},
		{"Terms & Conditions", inv.Terms},
	} {
		if strings.TrimSpace(section.body) == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr(section.title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(section.body), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func drawParty(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title, name, email, address string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(120, 120, 130)
	pdf.CellFormat(85, 5, title, "", 2, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(85, 6, tr(name), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(85, 5, tr(email), "", 2, "L", false, 0, "")
	pdf.MultiCell(85, 5, tr(address), "", "L", false)
}

func drawLogo(pdf *gofpdf.Fpdf, uri string) {
	contentType, data, err := DecodeLogo(uri)
	if err != nil {
		zap.L().Warn("skipping unreadable logo", zap.Error(err))
		return
	}

	imageType := ""
	switch contentType {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		zap.L().Warn("skipping logo in unsupported format", zap.String("content_type", contentType))
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	if !pdf.Ok() {
		zap.L().Warn("skipping logo that could not be decoded", zap.Error(pdf.Error()))
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("logo", 15, 15, 0, 24, false, opts, 0, "")
}

// The core PDF fonts only cover cp1252; other symbols fall back to the currency code
func pdfSymbol(inv domain.InvoiceData) string {
	symbol := inv.Symbol()
	switch symbol {
	case "$", "€", "£", "¥":
		return symbol
	}
	for _, r := range symbol {
		if r > 0x7f {
			return inv.Currency + " "
		}
	}
	return symbol
}
