package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"apoteka/internal/auth"
	"apoteka/internal/config"
	"apoteka/internal/db"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// seedMedicine pairs a medicine with the name of its type.
type seedMedicine struct {
	medicine model.Medicine
	typeName string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MedicineType{},
		&model.Supplier{},
		&model.Medicine{},
		&model.StockLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	typeIDs, err := seedMedicineTypes(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed medicine types: %v", err)
	}
	log.Printf("Medicine types ready: %d", len(typeIDs))

	if err := seedAdmin(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	created, skipped, err := seedMedicines(ctx, gormDB, typeIDs)
	if err != nil {
		log.Fatalf("Failed to seed medicines: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New medicines created: %d", created)
	log.Printf("  - Existing medicines skipped: %d", skipped)
}

// seedMedicineTypes makes sure the lookup table holds the standard set
// and returns name -> id.
func seedMedicineTypes(ctx context.Context, gormDB *gorm.DB) (map[string]uint, error) {
	names := []string{"Analgesic", "Antibiotic", "Antitussive", "Antidiabetic", "Antihistamine"}

	ids := make(map[string]uint, len(names))
	for _, name := range names {
		var mt model.MedicineType
		err := gormDB.WithContext(ctx).Where("name = ?", name).First(&mt).Error
		switch {
		case err == nil:
		case err == gorm.ErrRecordNotFound:
			mt = model.MedicineType{Name: name}
			if err := gormDB.WithContext(ctx).Create(&mt).Error; err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
		ids[name] = mt.ID
	}
	return ids, nil
}

// seedAdmin creates the administrator account if it does not exist.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "admin123")

	userRepo := repository.NewUserRepository(gormDB)
	if _, err := userRepo.FindByUsername(ctx, username); err == nil {
		log.Printf("Admin account %q already exists, skipping", username)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		FirstName:    "System",
		LastName:     "Administrator",
		Username:     username,
		Email:        envOr("ADMIN_EMAIL", "admin@pharmacy.local"),
		PasswordHash: hash,
		Role:         model.RoleAdministrator,
		Active:       true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin account %q created", username)
	return nil
}

// seedMedicines inserts a starter inventory. Existing names are left
// untouched so the script can run repeatedly.
func seedMedicines(ctx context.Context, gormDB *gorm.DB, typeIDs map[string]uint) (created int, skipped int, err error) {
	fixtures := []seedMedicine{
		{model.Medicine{Name: "Paracetamol 500mg", Manufacturer: "Hemofarm", DosageForm: "tablet", Strength: "500mg", Quantity: 200, Price: decimal.NewFromFloat(2.50)}, "Analgesic"},
		{model.Medicine{Name: "Ibuprofen 400mg", Manufacturer: "Galenika", DosageForm: "tablet", Strength: "400mg", Quantity: 150, Price: decimal.NewFromFloat(3.20)}, "Analgesic"},
		{model.Medicine{Name: "Amoxicillin 250mg", Manufacturer: "Pliva", DosageForm: "capsule", Strength: "250mg", Quantity: 80, Price: decimal.NewFromFloat(5.90)}, "Antibiotic"},
		{model.Medicine{Name: "Cough Syrup 150ml", Manufacturer: "Bosnalijek", DosageForm: "syrup", Strength: "150ml", Quantity: 60, Price: decimal.NewFromFloat(4.75)}, "Antitussive"},
		{model.Medicine{Name: "Insulin Glargine", Manufacturer: "Sanofi", DosageForm: "injection", Strength: "100IU/ml", Quantity: 40, Price: decimal.NewFromFloat(28.00)}, "Antidiabetic"},
	}

	medicineRepo := repository.NewMedicineRepository(gormDB)
	stockLogRepo := repository.NewStockLogRepository(gormDB)

	for _, fixture := range fixtures {
		var existing model.Medicine
		err := gormDB.WithContext(ctx).Where("name = ?", fixture.medicine.Name).First(&existing).Error
		switch {
		case err == nil:
			skipped++
			continue
		case err == gorm.ErrRecordNotFound:
		default:
			return created, skipped, err
		}

		medicine := fixture.medicine
		medicine.TypeID = typeIDs[fixture.typeName]
		if err := medicineRepo.Create(ctx, &medicine); err != nil {
			return created, skipped, err
		}

		// Record the opening stock so the audit trail starts at the
		// seeded quantity rather than an unexplained balance.
		err = medicineRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
			return stockLogRepo.CreateTx(ctx, tx, &model.StockLog{
				MedicineID: medicine.ID,
				Change:     medicine.Quantity,
				Reason:     "initial stock",
			})
		})
		if err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
