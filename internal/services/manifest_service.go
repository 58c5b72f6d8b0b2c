package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/superiortours/booking-backend/internal/models"
)

// ManifestService renders printable passenger manifests for trips.
// The manifest is the driver's boarding sheet: one row per booked
// seat with the patron's name and phone.
type ManifestService struct{}

// NewManifestService creates a new ManifestService
func NewManifestService() *ManifestService {
	return &ManifestService{}
}

// BuildTripManifest renders the manifest PDF for a trip whose booking
// collection is already loaded. Returns the PDF bytes and a filename.
func (s *ManifestService) BuildTripManifest(trip *models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Passenger Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Destination : %s", trip.Destination),
		fmt.Sprintf("Date / Time : %s %s", trip.Date.Format("2006-01-02"), trip.Time),
		fmt.Sprintf("Departs from: %s", trip.DepartureLocation),
	}
	if trip.Driver != nil {
		header = append(header, fmt.Sprintf("Driver      : %s (%s)", trip.Driver.Name, trip.Driver.Phone))
	}
	if trip.Bus != nil {
		header = append(header, fmt.Sprintf("Bus         : %s %s", trip.Bus.Number, trip.Bus.Model))
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(20, 8, "Seat", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 8, "Patron", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Phone", "1", 0, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, booking := range trip.Bookings {
		name := booking.PatronID
		if booking.PatronName != nil {
			name = *booking.PatronName
		}
		phone := ""
		if booking.PatronPhone != nil {
			phone = *booking.PatronPhone
		}

		pdf.CellFormat(20, 7, fmt.Sprintf("%d", booking.SeatNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, phone, "1", 0, "L", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Booked %d of %d seats (%d available)",
		len(trip.Bookings), trip.BusCapacity, trip.AvailableSeats()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render manifest: %w", err)
	}

	filename := fmt.Sprintf("manifest_%s_%s.pdf", trip.Date.Format("2006-01-02"), trip.ID)
	return buf.Bytes(), filename, nil
}
