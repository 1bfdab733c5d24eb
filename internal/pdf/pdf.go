// Package pdf renders quotations and invoices as fixed-layout PDF
// documents. Rendering is a pure function of the records passed in; the
// only filesystem access is the optional logo asset, and a missing or
// unreadable logo is skipped rather than failing the document.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
)

// Kind selects the document variant.
type Kind int

const (
	KindQuotation Kind = iota
	KindInvoice
)

// Business header and footer text. Single-tenant, so these are constants
// rather than per-document data.
const (
	businessName  = "CIALA RESORT KISUMU"
	businessTown  = "Kisumu"
	businessPhone = "Phone: +254 700 000 000"
	businessEmail = "Email: info@cialaexample.com"

	footerText = "Thank you for choosing Ciala Resort Kisumu. For inquiries, contact info@cialaexample.com"

	bankDetails = "Bank: Kenya Commercial Bank, Kisumu Branch  |  Account Name: Ciala Resort Ltd  |  Account No: 1122334455  |  SWIFT: KCBLKENX"
	termsText   = "Terms: 50% deposit confirms the booking. Balance payable within 30 days of the invoice date."
)

// Surcharge rates applied to the stored quotation total. Business
// configuration, not stored per document.
const (
	vatRate          = 0.16
	serviceCharge    = 0.10
	cateringLevyRate = 0.02
)

// LogoPath points at the optional logo asset drawn in the header band.
var LogoPath = "assets/logo.png"

// Palette lifted from the printed stationery.
var (
	accentColor   = [3]int{245, 231, 208}
	secondaryCol  = [3]int{160, 122, 63}
	tableHeaderBg = [3]int{230, 211, 179}
	tableRowEven  = [3]int{248, 246, 242}
	tableRowOdd   = [3]int{255, 255, 255}
)

// Quotation renders a quotation document.
func Quotation(q *models.Quotation) ([]byte, error) {
	return render(KindQuotation, q, nil)
}

// Invoice renders an invoice document using its source quotation for the
// client and item content.
func Invoice(inv *models.Invoice, q *models.Quotation) ([]byte, error) {
	return render(KindInvoice, q, inv)
}

func render(kind Kind, q *models.Quotation, inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 45)
	doc.SetTitle(title(kind), false)
	doc.AddPage()

	addHeader(doc, title(kind))
	if kind == KindInvoice && inv != nil {
		addInvoiceDetails(doc, inv)
	}
	addClientDetails(doc, q)
	addItemsTable(doc, q.Items, q.TotalAmount)
	addTerms(doc)
	addFooter(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s pdf: %w", strings.ToLower(title(kind)), err)
	}
	return buf.Bytes(), nil
}

func title(kind Kind) string {
	if kind == KindInvoice {
		return "INVOICE"
	}
	return "QUOTATION"
}

func addHeader(doc *gofpdf.Fpdf, heading string) {
	w, _ := doc.GetPageSize()

	doc.SetFillColor(accentColor[0], accentColor[1], accentColor[2])
	doc.Rect(0, 0, w, 42, "F")

	addLogo(doc)

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetXY(60, 10)
	doc.CellFormat(135, 9, businessName, "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, line := range []string{businessTown, businessPhone, businessEmail} {
		doc.SetX(60)
		doc.CellFormat(135, 5, line, "", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetXY(0, 44)
	doc.CellFormat(w, 11, heading, "", 1, "C", false, 0, "")

	doc.SetDrawColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetLineWidth(0.6)
	doc.Line(18, 57, w-18, 57)
	doc.SetY(62)
}

// addLogo draws the logo asset if it exists and decodes; anything wrong
// with it is cleared so the rest of the page still renders.
func addLogo(doc *gofpdf.Fpdf) {
	if _, err := os.Stat(LogoPath); err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ReadDpi: true}
	doc.ImageOptions(LogoPath, 18, 9, 26, 0, false, opts, 0, "")
	if doc.Err() {
		doc.ClearError()
	}
}

func addInvoiceDetails(doc *gofpdf.Fpdf, inv *models.Invoice) {
	sectionTitle(doc, "Invoice Details")
	labelled(doc, "Invoice #: ", inv.InvoiceNumber)
	labelled(doc, "Invoice Date: ", inv.InvoiceDate.Format("02 Jan 2006"))
	doc.Ln(4)
}

func addClientDetails(doc *gofpdf.Fpdf, q *models.Quotation) {
	sectionTitle(doc, "Client Details")
	labelled(doc, "Name: ", q.ClientName)
	labelled(doc, "Email: ", q.Email)
	labelled(doc, "Phone: ", q.Phone)
	labelled(doc, "Date: ", q.QuotationDate.Format("02 Jan 2006"))
	doc.Ln(5)
}

func sectionTitle(doc *gofpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetX(18)
	doc.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
}

func labelled(doc *gofpdf.Fpdf, label, value string) {
	doc.SetX(22)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(doc.GetStringWidth(label)+1, 5.5, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5.5, value, "", 1, "L", false, 0, "")
}

// Column widths for the items table, 180mm total.
var colWidths = [4]float64{85, 20, 35, 40}

func addItemsTable(doc *gofpdf.Fpdf, items models.ItemList, totalAmount float64) {
	const rowH = 8.0

	doc.SetX(15)
	doc.SetFont("Helvetica", "B", 10.5)
	doc.SetFillColor(tableHeaderBg[0], tableHeaderBg[1], tableHeaderBg[2])
	doc.SetDrawColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetTextColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetLineWidth(0.3)
	headers := [4]string{"Item", "Qty", "Price", "Total"}
	aligns := [4]string{"L", "R", "R", "R"}
	for i, h := range headers {
		doc.CellFormat(colWidths[i], rowH, h, "1", 0, aligns[i], true, 0, "")
	}
	doc.Ln(rowH)

	doc.SetDrawColor(224, 224, 224)
	doc.SetLineWidth(0.15)
	for i, it := range items {
		bg := tableRowOdd
		if i%2 == 0 {
			bg = tableRowEven
		}
		doc.SetFillColor(bg[0], bg[1], bg[2])
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "", 10)
		doc.SetX(15)
		doc.CellFormat(colWidths[0], rowH, it.Name, "1", 0, "L", true, 0, "")
		doc.CellFormat(colWidths[1], rowH, formatQty(it.Qty), "1", 0, "R", true, 0, "")
		doc.CellFormat(colWidths[2], rowH, formatAmount(it.EffectiveUnitPrice()), "1", 0, "R", true, 0, "")
		doc.CellFormat(colWidths[3], rowH, formatAmount(it.LineTotal()), "1", 1, "R", true, 0, "")

		for _, sub := range it.SubItems {
			doc.SetX(15)
			doc.SetFont("Helvetica", "I", 8.5)
			doc.SetTextColor(90, 90, 90)
			doc.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3], 5.5,
				"    - "+sub, "LR", 1, "L", true, 0, "")
		}
	}

	addTotals(doc, totalAmount)
}

func addTotals(doc *gofpdf.Fpdf, subtotal float64) {
	const rowH = 7.0
	labelW := colWidths[0] + colWidths[1] + colWidths[2]

	vat := subtotal * vatRate
	service := subtotal * serviceCharge
	levy := subtotal * cateringLevyRate
	grand := subtotal + vat + service + levy

	rows := []struct {
		label string
		value float64
	}{
		{"Subtotal", subtotal},
		{fmt.Sprintf("VAT (%.0f%%)", vatRate*100), vat},
		{fmt.Sprintf("Service Charge (%.0f%%)", serviceCharge*100), service},
		{fmt.Sprintf("Catering Levy (%.0f%%)", cateringLevyRate*100), levy},
	}

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(224, 224, 224)
	for _, row := range rows {
		doc.SetX(15)
		doc.CellFormat(labelW, rowH, row.label, "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[3], rowH, formatAmount(row.value), "1", 1, "R", false, 0, "")
	}

	doc.SetX(15)
	doc.SetFont("Helvetica", "B", 11.5)
	doc.SetTextColor(255, 255, 255)
	doc.SetFillColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.SetDrawColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.CellFormat(labelW, rowH+1, "Grand Total", "1", 0, "R", true, 0, "")
	doc.CellFormat(colWidths[3], rowH+1, formatAmount(grand), "1", 1, "R", true, 0, "")
	doc.Ln(6)
}

func addTerms(doc *gofpdf.Fpdf) {
	doc.SetX(18)
	doc.SetFont("Helvetica", "", 8.5)
	doc.SetTextColor(90, 90, 90)
	doc.MultiCell(174, 4.5, termsText, "", "L", false)
	doc.SetX(18)
	doc.MultiCell(174, 4.5, bankDetails, "", "L", false)
}

func addFooter(doc *gofpdf.Fpdf) {
	w, h := doc.GetPageSize()
	doc.SetFillColor(secondaryCol[0], secondaryCol[1], secondaryCol[2])
	doc.Rect(0, h-14, w, 14, "F")
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(255, 255, 255)
	doc.SetXY(0, h-10)
	doc.CellFormat(w, 5, footerText, "", 0, "C", false, 0, "")
}

func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return strconv.FormatInt(int64(qty), 10)
	}
	return strconv.FormatFloat(qty, 'f', 2, 64)
}

// formatAmount renders 1234567.5 as "1,234,567.50".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
