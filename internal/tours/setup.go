package tours

import (
	"log"

	"github.com/WildTrails/WT-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "tours"); err != nil {
		log.Fatal("Failed to ensure schema tours: ", err)
	}
	if err := db.DB.AutoMigrate(&Tour{}); err != nil {
		log.Fatal("Failed to auto-migrate tables: ", err)
	}
}
