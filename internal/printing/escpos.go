package printing

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
)

// paperWidth is the character width of a 58–80mm thermal printer in font A.
const paperWidth = 32

// DeviceBackend writes raw ESC/POS bytes to a locally attached printer
// character device (e.g. /dev/usb/lp0). It is the first tier when the
// service runs on the register host itself.
type DeviceBackend struct {
	devicePath string
}

func NewDeviceBackend(devicePath string) *DeviceBackend {
	return &DeviceBackend{devicePath: devicePath}
}

func (b *DeviceBackend) Name() string { return "device" }

func (b *DeviceBackend) Send(ctx context.Context, doc *receipt.Document) error {
	if b.devicePath == "" {
		return fmt.Errorf("device: no printer device configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(b.devicePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("device: open %s: %w", b.devicePath, err)
	}
	defer f.Close()

	if _, err := f.Write(encode(doc)); err != nil {
		return fmt.Errorf("device: write: %w", err)
	}
	return nil
}

// encode renders the receipt as ESC/POS: init, centered header, item lines,
// summary, feed and partial cut.
func encode(doc *receipt.Document) []byte {
	var buf bytes.Buffer

	buf.Write([]byte{0x1b, 0x40})       // ESC @  initialize
	buf.Write([]byte{0x1b, 0x61, 0x01}) // ESC a 1  center

	buf.WriteString(doc.Header.StoreName + "\n")
	if doc.Header.StoreAddress != "" {
		buf.WriteString(doc.Header.StoreAddress + "\n")
	}
	if doc.Header.StoreCity != "" {
		buf.WriteString(doc.Header.StoreCity + "\n")
	}
	buf.WriteString(doc.Header.Title + "\n")

	buf.Write([]byte{0x1b, 0x61, 0x00}) // ESC a 0  left
	buf.WriteString(rule() + "\n")
	buf.WriteString(doc.Info.TransactionID + "\n")
	buf.WriteString(doc.Info.DateTime + "\n")
	buf.WriteString(rule() + "\n")

	for _, it := range doc.Items {
		buf.WriteString(truncate(it.Name, paperWidth) + "\n")
		qty := formatQty(it.Quantity)
		left := fmt.Sprintf("  %s %s x %s", qty, it.Unit, money(it.Price))
		buf.WriteString(padLine(left, money(it.Subtotal)) + "\n")
	}

	buf.WriteString(rule() + "\n")
	buf.WriteString(padLine("TOTAL", money(doc.Summary.Total)) + "\n")
	buf.WriteString(padLine("TUNAI", money(doc.Summary.AmountPaid)) + "\n")
	buf.WriteString(padLine("KEMBALI", money(doc.Summary.Change)) + "\n")

	buf.Write([]byte{0x1b, 0x61, 0x01})
	buf.WriteString("\nTerima kasih\n")

	buf.Write([]byte{0x1b, 0x64, 0x04}) // ESC d 4  feed 4 lines
	buf.Write([]byte{0x1d, 0x56, 0x01}) // GS V 1   partial cut
	return buf.Bytes()
}

func rule() string { return strings.Repeat("-", paperWidth) }

func money(d decimal.Decimal) string { return d.StringFixed(0) }

func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

// padLine right-aligns value after label within the paper width.
func padLine(label, value string) string {
	space := paperWidth - len(label) - len(value)
	if space < 1 {
		space = 1
	}
	return label + strings.Repeat(" ", space) + value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
