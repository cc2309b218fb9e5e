package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fdrs/internal/config"
	"fdrs/internal/database"
	"fdrs/internal/domain"
)

// Seeds an admin account and the faculty list so a fresh database is
// immediately usable. Safe to run more than once.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatal(err)
	}
	if err := seedFaculties(db); err != nil {
		log.Fatal(err)
	}

	log.Println("seed complete")
}

func seedAdmin(db *gorm.DB) error {
	var existing domain.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		log.Println("admin user already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@fdrs.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("created admin user (change the default password)")
	return nil
}

func seedFaculties(db *gorm.DB) error {
	names := []string{
		"Engineering",
		"Medicine",
		"Law",
		"Business",
		"Arts and Humanities",
		"Natural Sciences",
		"Computer Science",
	}
	for _, name := range names {
		var existing domain.Faculty
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&domain.Faculty{Name: name}).Error; err != nil {
			return err
		}
		log.Printf("created faculty %q", name)
	}
	return nil
}
