// file: internals/features/finance/payments/service/invoice.go
package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceData: semua field yang tampil di invoice PDF.
type InvoiceData struct {
	OrderID       string
	UserName      string
	UserEmail     string
	CourseTitle   string
	AmountIDR     int
	Currency      string
	TransactionID string
	PaidAt        time.Time
	VerifiedAt    time.Time
}

// RenderInvoicePDF menghasilkan dokumen invoice sebagai binary PDF.
func RenderInvoicePDF(inv InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.OrderID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Order ID     : %s", inv.OrderID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Tanggal bayar: %s", inv.PaidAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Diverifikasi : %s", inv.VerifiedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, inv.UserName)
	pdf.Ln(7)
	pdf.Cell(0, 7, inv.UserEmail)
	pdf.Ln(12)

	// tabel item sederhana: satu course per invoice
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Deskripsi", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Jumlah", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(120, 8, inv.CourseTitle, "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%s %d", inv.Currency, inv.AmountIDR), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Transaction ID: %s", inv.TransactionID))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Invoice ini dibuat otomatis setelah pembayaran diverifikasi admin.")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render invoice gagal: %w", err)
	}
	return buf.Bytes(), nil
}
