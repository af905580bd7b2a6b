package printing

// pdf.go — last-resort tier. Renders the receipt as a thermal-sized PDF in
// a spool directory; the register UI opens it in the browser print dialog
// when neither the local device nor the relay could print.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
)

type PDFBackend struct {
	spoolPath string
}

func NewPDFBackend(spoolPath string) *PDFBackend {
	return &PDFBackend{spoolPath: spoolPath}
}

func (b *PDFBackend) Name() string { return "pdf" }

func (b *PDFBackend) Send(ctx context.Context, doc *receipt.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.render(doc)
	return err
}

// render writes the PDF and returns its path.
func (b *PDFBackend) render(doc *receipt.Document) (string, error) {
	if err := os.MkdirAll(b.spoolPath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create spool dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", doc.Info.TransactionID)
	filePath := filepath.Join(b.spoolPath, fileName)

	// 76mm wide — 70–80mm thermal paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 76, Ht: 160},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, doc.Header.StoreName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, doc.Header.StoreAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, doc.Header.StoreCity, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, doc.Header.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Transaction info ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, doc.Info.TransactionID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, doc.Info.DateTime, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // name
	col2 := contentW * 0.22 // qty + unit
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Barang", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Jml", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, it := range doc.Items {
		name := it.Name
		if len(name) > 20 {
			name = name[:19] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%s %s", formatQty(it.Quantity), it.Unit), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, money(it.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Summary ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, money(doc.Summary.Total), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Tunai", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, money(doc.Summary.AmountPaid), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "Kembali", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, money(doc.Summary.Change), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Terima kasih", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
