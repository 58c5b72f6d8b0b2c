package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/superiortours/booking-backend/internal/config"
	"github.com/superiortours/booking-backend/internal/database"
	"github.com/superiortours/booking-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func main() {
	var dbURLFlag string
	var clearFlag bool
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&clearFlag, "clear", true, "truncate existing data before seeding")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Build minimal database config without loading full app config
	dbCfg := config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	}

	db, err := database.NewConnection(dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if clearFlag {
		fmt.Println("Connected to database. Truncating tables...")
		if _, err := db.Exec(`TRUNCATE TABLE bookings, trips, patrons RESTART IDENTITY CASCADE;`); err != nil {
			log.Fatalf("failed to truncate tables: %v", err)
		}
		fmt.Println("Existing data cleared")
	}

	patronRepo := database.NewPatronRepository(db)
	tripRepo := database.NewTripRepository(db)
	bookingRepo := database.NewBookingRepository(db)

	patrons := samplePatrons()
	for _, p := range patrons {
		if err := patronRepo.Create(p); err != nil {
			log.Fatalf("failed to create patron %s: %v", p.Name, err)
		}
	}
	fmt.Printf("Created %d patrons\n", len(patrons))

	trips := sampleTrips()
	for _, t := range trips {
		if err := tripRepo.Create(t); err != nil {
			log.Fatalf("failed to create trip to %s: %v", t.Destination, err)
		}
	}
	fmt.Printf("Created %d trips\n", len(trips))

	// Book a few seats on the first trip so the dashboard has data
	seedBookings := []struct {
		patron  int
		seat    int
		payment models.PaymentStatus
	}{
		{0, 1, models.PaymentStatusPaid},
		{1, 5, models.PaymentStatusPaid},
		{2, 12, models.PaymentStatusPending},
	}
	for _, sb := range seedBookings {
		booking := &models.Booking{
			TripID:        trips[0].ID,
			PatronID:      patrons[sb.patron].ID,
			SeatNumber:    sb.seat,
			BookingDate:   time.Now(),
			Status:        models.BookingStatusConfirmed,
			PaymentStatus: sb.payment,
		}
		if err := bookingRepo.ClaimSeat(booking); err != nil {
			log.Fatalf("failed to book seat %d on first trip: %v", sb.seat, err)
		}
	}
	fmt.Printf("Created %d bookings on the first trip\n", len(seedBookings))

	fmt.Println("Database seeded successfully!")
}

func samplePatrons() []*models.Patron {
	return []*models.Patron{
		{
			Name:    "Mary Johnson",
			Phone:   "4105550123",
			Address: strPtr("123 Main St, Baltimore, MD 21201"),
			Email:   strPtr("mary.johnson@email.com"),
			EmergencyContact: &models.EmergencyContact{
				Name:         "John Johnson",
				Phone:        "4105550124",
				Relationship: "Spouse",
			},
			Notes: strPtr("Prefers front seats"),
		},
		{
			Name:    "Robert Smith",
			Phone:   "4105550456",
			Address: strPtr("456 Oak Ave, Randallstown, MD 21133"),
			Email:   strPtr("robert.smith@email.com"),
			EmergencyContact: &models.EmergencyContact{
				Name:         "Sarah Smith",
				Phone:        "4105550457",
				Relationship: "Daughter",
			},
		},
		{
			Name:    "Patricia Davis",
			Phone:   "4105550789",
			Address: strPtr("789 Pine Rd, Towson, MD 21204"),
			Email:   strPtr("patricia.davis@email.com"),
			EmergencyContact: &models.EmergencyContact{
				Name:         "Michael Davis",
				Phone:        "4105550790",
				Relationship: "Son",
			},
			Notes: strPtr("Wheelchair accessible seating needed"),
		},
		{
			Name:    "James Wilson",
			Phone:   "4105550321",
			Address: strPtr("321 Elm St, Catonsville, MD 21228"),
			Email:   strPtr("james.wilson@email.com"),
		},
		{
			Name:    "Linda Brown",
			Phone:   "4105550654",
			Address: strPtr("654 Maple Dr, Dundalk, MD 21222"),
			Email:   strPtr("linda.brown@email.com"),
			EmergencyContact: &models.EmergencyContact{
				Name:         "David Brown",
				Phone:        "4105550655",
				Relationship: "Husband",
			},
		},
	}
}

func sampleTrips() []*models.Trip {
	// Dates are relative so re-running the seed always produces
	// bookable future trips.
	base := time.Now().Truncate(24 * time.Hour)
	return []*models.Trip{
		{
			Destination:       "Delaware Park Casino",
			Date:              base.AddDate(0, 0, 14),
			Time:              "09:00",
			BusCapacity:       45,
			Price:             35,
			DepartureLocation: "Superior Tours Office, Baltimore",
			ReturnTime:        strPtr("18:00"),
			Description:       strPtr("Day trip to Delaware Park Casino with lunch included"),
			Driver: &models.DriverInfo{
				Name:    "Mike Johnson",
				Phone:   "4105551000",
				License: "CDL-12345",
			},
			Bus: &models.BusInfo{
				Number:   "ST-001",
				Model:    "MCI J4500",
				Capacity: 45,
			},
		},
		{
			Destination:       "Midway Slots & Simulcast",
			Date:              base.AddDate(0, 0, 21),
			Time:              "10:30",
			BusCapacity:       45,
			Price:             40,
			DepartureLocation: "Superior Tours Office, Baltimore",
			ReturnTime:        strPtr("19:30"),
			Description:       strPtr("Casino trip with buffet dinner"),
			Driver: &models.DriverInfo{
				Name:    "Sarah Williams",
				Phone:   "4105551001",
				License: "CDL-12346",
			},
			Bus: &models.BusInfo{
				Number:   "ST-002",
				Model:    "MCI J4500",
				Capacity: 45,
			},
		},
		{
			Destination:       "Hollywood Casino Perryville",
			Date:              base.AddDate(0, 1, 5),
			Time:              "08:00",
			BusCapacity:       45,
			Price:             45,
			DepartureLocation: "Superior Tours Office, Baltimore",
			ReturnTime:        strPtr("20:00"),
			Description:       strPtr("Extended casino trip with premium amenities"),
			Driver: &models.DriverInfo{
				Name:    "Mike Johnson",
				Phone:   "4105551000",
				License: "CDL-12345",
			},
			Bus: &models.BusInfo{
				Number:   "ST-001",
				Model:    "MCI J4500",
				Capacity: 45,
			},
		},
	}
}
