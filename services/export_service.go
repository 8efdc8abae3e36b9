package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/music-studio/music-studio-api/models"
)

const bookingSheet = "Bookings"

// statusColumn is the 1-based column of "Status" in bookingHeaders
const statusColumn = 10

var bookingHeaders = []string{
	"ID", "Client", "Email", "Phone", "Date", "Time Slot", "Package", "Service",
	"Message", "Status", "Admin Notes", "Responded At", "Created At",
}

// BookingExporter renders bookings into an xlsx workbook
type BookingExporter struct {
	bookings *BookingService
}

func NewBookingExporter(bookings *BookingService) *BookingExporter {
	return &BookingExporter{bookings: bookings}
}

// Export builds a workbook with one row per booking, optionally limited to one status
func (e *BookingExporter) Export(status string) (*bytes.Buffer, error) {
	bookings, err := e.bookings.List(status)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingSheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	if err := f.SetSheetRow(bookingSheet, "A1", &bookingHeaders); err != nil {
		return nil, fmt.Errorf("error writing header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	if err != nil {
		return nil, fmt.Errorf("error locating header cells: %w", err)
	}
	if err := f.SetCellStyle(bookingSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("error styling header row: %w", err)
	}

	approvedStyle, err := statusStyle(f, "#E2EFDA")
	if err != nil {
		return nil, err
	}
	rejectedStyle, err := statusStyle(f, "#FCE4D6")
	if err != nil {
		return nil, err
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{
			b.ID, b.ClientName, b.Email, b.Phone, b.Date.Format(dateLayout), b.TimeSlot,
			b.PackageName, b.Service, b.Message, string(b.Status), b.AdminNotes,
			formatOptionalTime(b), b.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("error locating row %d: %w", row, err)
		}
		if err := f.SetSheetRow(bookingSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", row, err)
		}

		var style int
		switch b.Status {
		case models.BookingApproved:
			style = approvedStyle
		case models.BookingRejected:
			style = rejectedStyle
		default:
			continue
		}
		statusCell, err := excelize.CoordinatesToCellName(statusColumn, row)
		if err != nil {
			return nil, fmt.Errorf("error locating status cell on row %d: %w", row, err)
		}
		if err := f.SetCellStyle(bookingSheet, statusCell, statusCell, style); err != nil {
			return nil, fmt.Errorf("error styling row %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(bookingSheet, "A", "A", 8); err != nil {
		return nil, fmt.Errorf("error setting column width: %w", err)
	}
	if err := f.SetColWidth(bookingSheet, "B", "M", 20); err != nil {
		return nil, fmt.Errorf("error setting column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}

// statusStyle creates a solid fill used to colour the Status column
func statusStyle(f *excelize.File, color string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating status style: %w", err)
	}
	return style, nil
}

func formatOptionalTime(b models.Booking) string {
	if b.RespondedAt == nil {
		return ""
	}
	return b.RespondedAt.Format("2006-01-02 15:04")
}
