package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"banwatch/internal/database"
	"banwatch/internal/domain"
)

// Seeds a local SQLite database with demo staff and bans.
func main() {
	db, err := database.Connect("banwatch.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM game_bans")
	db.Exec("DELETE FROM staff")

	log.Println("Creating staff...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.StaffAccount{
		Username:     "admin",
		Email:        "admin@game.com",
		PasswordHash: string(adminHash),
		IsAdmin:      true,
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Staff created: admin / admin123")

	modHash, _ := bcrypt.GenerateFromPassword([]byte("mod123"), bcrypt.DefaultCost)
	mod := domain.StaffAccount{
		Username:     "moderator",
		Email:        "moderator@game.com",
		PasswordHash: string(modHash),
		IsActive:     true,
	}
	db.Create(&mod)
	log.Println("Staff created: moderator / mod123")

	log.Println("Creating bans...")
	in48h := time.Now().Add(48 * time.Hour)
	expired := time.Now().Add(-2 * time.Hour)

	bans := []domain.Ban{
		{
			PlayerID:   "1001",
			PlayerName: "Griefer42",
			Reason:     "Griefing spawn area",
			BanType:    domain.BanPermanent,
			IsActive:   true,
			BannedByID: admin.ID,
		},
		{
			PlayerID:   "1002",
			PlayerName: "SpeedHax",
			Reason:     "Speed hacking",
			BanType:    domain.BanTemporary,
			ExpiresAt:  &in48h,
			IsActive:   true,
			BannedByID: mod.ID,
		},
		{
			PlayerID:   "1003",
			Reason:     "Chat abuse",
			BanType:    domain.BanTemporary,
			ExpiresAt:  &expired,
			IsActive:   true,
			BannedByID: mod.ID,
		},
	}
	for i := range bans {
		db.Create(&bans[i])
	}

	log.Printf("Seed complete: %d bans", len(bans))
}
