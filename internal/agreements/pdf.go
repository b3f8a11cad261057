package agreements

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont      = "Arial"
	pdfMarginMM  = 15.0
	pdfLineHt    = 7.0
	pdfTitleSize = 16.0
	pdfBodySize  = 10.5
)

// renderAgreementPDF lays out a single-column agreement document: a centered
// title, a two-column terms table, then the standard clauses.
func renderAgreementPDF(agreement *Agreement, ownerName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginMM, pdfMarginMM+5, pdfMarginMM)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "RENT AGREEMENT", "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFont, "", pdfBodySize-1.5)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(pdfFont, "", pdfBodySize)
	intro := fmt.Sprintf(
		"This rent agreement is made on %s between %s (the Landlord) and %s (the Tenant) "+
			"for the property described below.",
		time.Now().Format("2 January 2006"), ownerName, agreement.TenantName)
	pdf.MultiCell(0, pdfLineHt-1, intro, "", "L", false)
	pdf.Ln(3)

	writeTermsTable(pdf, agreement)
	pdf.Ln(5)

	pdf.SetFont(pdfFont, "B", pdfBodySize+1)
	pdf.CellFormat(0, 8, "Terms and Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", pdfBodySize)
	for i, clause := range standardClauses(agreement) {
		pdf.MultiCell(0, pdfLineHt-1, fmt.Sprintf("%d. %s", i+1, clause), "", "L", false)
		pdf.Ln(1)
	}

	pdf.Ln(14)
	writeSignatureBlock(pdf, ownerName, agreement.TenantName)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render agreement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTermsTable(pdf *gofpdf.Fpdf, agreement *Agreement) {
	rows := [][2]string{
		{"Property", agreement.Property.Title},
		{"Address", propertyAddress(agreement)},
		{"Tenant", agreement.TenantName},
		{"Tenant Phone", agreement.TenantPhone},
	}
	if agreement.TenantAddress != "" {
		rows = append(rows, [2]string{"Tenant Address", agreement.TenantAddress})
	}
	rows = append(rows,
		[2]string{"Monthly Rent", fmt.Sprintf("Rs. %.2f", agreement.MonthlyRent)},
		[2]string{"Security Deposit", fmt.Sprintf("Rs. %.2f", agreement.SecurityDeposit)},
		[2]string{"Term", fmt.Sprintf("%d months", agreement.TermMonths)},
		[2]string{"Start Date", agreement.StartDate.Format("2 January 2006")},
		[2]string{"End Date", agreement.EndDate().Format("2 January 2006")},
		[2]string{"Notice Period", fmt.Sprintf("%d days", agreement.NoticePeriod)},
	)

	labelWidth := 50.0
	fill := false
	for _, row := range rows {
		if fill {
			pdf.SetFillColor(242, 242, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont(pdfFont, "B", pdfBodySize)
		pdf.CellFormat(labelWidth, pdfLineHt, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont(pdfFont, "", pdfBodySize)
		pdf.CellFormat(0, pdfLineHt, row[1], "1", 1, "L", true, 0, "")
		fill = !fill
	}
}

func writeSignatureBlock(pdf *gofpdf.Fpdf, ownerName, tenantName string) {
	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMarginMM) / 2

	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.CellFormat(colWidth, pdfLineHt, "_______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, pdfLineHt, "_______________________", "", 1, "R", false, 0, "")
	pdf.SetFont(pdfFont, "B", pdfBodySize)
	pdf.CellFormat(colWidth, pdfLineHt, fmt.Sprintf("Landlord: %s", ownerName), "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, pdfLineHt, fmt.Sprintf("Tenant: %s", tenantName), "", 1, "R", false, 0, "")
}

func propertyAddress(agreement *Agreement) string {
	p := agreement.Property
	addr := p.Address
	if addr == "" {
		addr = p.Locality
	}
	if addr == "" {
		return p.City
	}
	return fmt.Sprintf("%s, %s", addr, p.City)
}

func standardClauses(agreement *Agreement) []string {
	return []string{
		fmt.Sprintf("The Tenant shall pay a monthly rent of Rs. %.2f in advance on or before the 5th day of each month.", agreement.MonthlyRent),
		fmt.Sprintf("The Tenant has paid a refundable security deposit of Rs. %.2f, returnable at the end of the tenancy after deduction of agreed dues.", agreement.SecurityDeposit),
		fmt.Sprintf("The tenancy is for a fixed term of %d months starting %s.", agreement.TermMonths, agreement.StartDate.Format("2 January 2006")),
		fmt.Sprintf("Either party may terminate this agreement with %d days of written notice.", agreement.NoticePeriod),
		"The Tenant shall use the premises for residential purposes only and shall not sublet without the Landlord's written consent.",
		"The Tenant shall bear electricity, water and other utility charges as per actual consumption.",
		"The Landlord shall be responsible for structural repairs; day to day maintenance rests with the Tenant.",
	}
}
