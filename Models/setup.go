package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "palkhitrans.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// Migrate runs AutoMigrate in dependency order. Split out of Connect so tests
// can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	// 1. Base tables with no foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Vehicle{},
		&OrgSetting{},
		&AuditLog{},
	); err != nil {
		return err
	}

	// 2. Booking and its vehicle records
	if err := db.AutoMigrate(
		&Booking{},
		&RequestedVehicle{},
		&AssignedVehicle{},
	); err != nil {
		return err
	}

	// 3. Billing tables last; company bills and transfers hang off customer bills
	return db.AutoMigrate(
		&CustomerBill{},
		&BillVehicle{},
		&CompanyBill{},
		&TransferRequirement{},
		&Transfer{},
	)
}
