package booking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"gigmatch/internal/domain/auth"
)

var ErrReceiptNotReady = errors.New("booking is not completed")

type ReceiptData struct {
	BookingID        string
	WorkerName       string
	JobTitle         string
	ShiftDate        time.Time
	StartTime        string
	EndTime          string
	RatePerHour      float64
	TotalEarnings    float64
	BonusPoints      int
	LocationVerified bool
	Status           string
}

// GenerateReceiptPDF renders an earnings receipt for a completed booking and
// returns the file path. Receipts are written under storage/receipts.
func (s *Service) GenerateReceiptPDF(ctx context.Context, sess auth.Session, bookingID string) (string, error) {
	if !sess.Valid() {
		return "", ErrNoSession
	}

	data, err := s.store.ReceiptData(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if data.Status != StatusCompleted {
		return "", ErrReceiptNotReady
	}

	if err := os.MkdirAll("storage/receipts", 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join("storage/receipts", data.BookingID+".pdf")

	verification := "not verified"
	if data.LocationVerified {
		verification = "verified"
	}
	hours := HoursWorked(data.StartTime, data.EndTime)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Earnings Receipt")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Worker: %s", data.WorkerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Job: %s", data.JobTitle))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Shift: %s %s-%s", data.ShiftDate.Format("2006-01-02"), data.StartTime, data.EndTime))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hours: %d at %.2f/hr", hours, data.RatePerHour))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Location: %s", verification))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Total earnings: %.2f", data.TotalEarnings))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus points: %d", data.BonusPoints))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
