package bookings

import (
	"log"

	"github.com/WildTrails/WT-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "bookings"); err != nil {
		log.Fatal("Failed to ensure schema bookings: ", err)
	}
	if err := db.DB.AutoMigrate(&Booking{}); err != nil {
		log.Fatal("Failed to auto-migrate tables: ", err)
	}
}
