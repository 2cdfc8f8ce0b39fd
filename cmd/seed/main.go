package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain"
)

func main() {
	_ = godotenv.Load()

	csvPath := flag.String("ingredients", "data/ingredients.csv", "path to ingredients CSV (name,measurement_unit)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seedIngredients(db, *csvPath); err != nil {
		log.Fatal("ingredient import failed:", err)
	}
	if err := seedTags(db); err != nil {
		log.Fatal("tag seed failed:", err)
	}
	if err := seedAdmin(db); err != nil {
		log.Fatal("admin seed failed:", err)
	}

	log.Println("Seed complete")
}

// seedIngredients loads "name,measurement_unit" rows. Rows that already
// exist are skipped, so reruns are safe.
func seedIngredients(db *gorm.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	var batch []domain.Ingredient
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		batch = append(batch, domain.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
		count++

		if len(batch) == 500 {
			if err := insertIngredients(db, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := insertIngredients(db, batch); err != nil {
			return err
		}
	}

	log.Printf("Imported %d ingredients from %s", count, path)
	return nil
}

func insertIngredients(db *gorm.DB, batch []domain.Ingredient) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch).Error
}

func seedTags(db *gorm.DB) error {
	log.Println("Creating tags...")

	tags := []domain.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
}

func seedAdmin(db *gorm.DB) error {
	log.Println("Creating admin user...")

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		Email:        "admin@foodgram.local",
		Username:     "admin",
		FirstName:    "Site",
		LastName:     "Admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error
}
