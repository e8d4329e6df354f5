package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const timeLayout = "2006-01-02 15:04"

// VipReceipt holds everything printed on a completed VIP booking receipt.
type VipReceipt struct {
	Reference   string
	ClubName    string
	RoomName    string
	Guest       string
	StartTime   time.Time
	EndTime     time.Time
	BilledHours int64
	HourlyRate  decimal.Decimal
	Amount      decimal.Decimal
}

// Render draws a one-page A4 PDF. The QR code encodes the booking reference.
func Render(r VipReceipt) ([]byte, error) {
	qrPNG, err := qrcode.Encode(r.Reference, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("VIP receipt "+r.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, r.ClubName)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "VIP Room Receipt")
	pdf.Ln(14)

	rows := [][2]string{
		{"Reference", r.Reference},
		{"Room", r.RoomName},
		{"Guest", r.Guest},
		{"Start", r.StartTime.Format(timeLayout)},
		{"End", r.EndTime.Format(timeLayout)},
		{"Billed hours", fmt.Sprintf("%d", r.BilledHours)},
		{"Hourly rate", r.HourlyRate.StringFixed(2)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(40, 8, row[0])
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, row[1])
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Total")
	pdf.Cell(0, 10, r.Amount.StringFixed(2))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", r.Reference, err)
	}

	return buf.Bytes(), nil
}
