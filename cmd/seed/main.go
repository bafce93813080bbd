package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodjournal/internal/config"
	"foodjournal/internal/db"
	"foodjournal/internal/model"
	"foodjournal/internal/repository"
	"foodjournal/internal/storage"
)

// seedUser describes one demo account with its dishes.
type seedUser struct {
	Username string
	Email    string
	AboutMe  string
	Dishes   []seedDish
}

type seedDish struct {
	Title   string
	Comment string
	Public  bool
}

const seedPassword = "password123"

var seedUsers = []seedUser{
	{
		Username: "alice",
		Email:    "alice@example.com",
		AboutMe:  "Home cook, mostly pasta.",
		Dishes: []seedDish{
			{Title: "Cacio e Pepe", Comment: "Three ingredients, zero regrets.", Public: true},
			{Title: "Midnight Toast", Comment: "Not proud of this one.", Public: false},
		},
	},
	{
		Username: "bob",
		Email:    "bob@example.com",
		AboutMe:  "Grill enthusiast.",
		Dishes: []seedDish{
			{Title: "Smoked Brisket", Comment: "14 hours at 110C.", Public: true},
		},
	},
	{
		Username: "carol",
		Email:    "carol@example.com",
		Dishes: []seedDish{
			{Title: "Tacos", Comment: "Tuesday obligation.", Public: true},
		},
	},
}

// follower -> followed, by username
var seedFollows = [][2]string{
	{"alice", "bob"},
	{"alice", "carol"},
	{"bob", "alice"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Follow{}, &model.FoodItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)
	foodRepo := repository.NewFoodRepository(gormDB)

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	hash := string(hashed)

	ids := make(map[string]uint, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, su.Username)
		if err == nil {
			ids[su.Username] = existing.ID
			log.Printf("User %s already exists, skipping", su.Username)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up user %s: %v", su.Username, err)
		}

		user := &model.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: &hash,
			Active:       true,
			AboutMe:      su.AboutMe,
			LastSeen:     time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}
		ids[su.Username] = user.ID

		// Seeded dishes get pre-assigned keys; no remote upload happens here,
		// the create pipeline skips records without a staged asset.
		for _, sd := range su.Dishes {
			item := &model.FoodItem{
				Title:    sd.Title,
				Comment:  sd.Comment,
				Public:   sd.Public,
				UserID:   user.ID,
				ImageKey: storage.DeriveKey(sd.Title + ".jpg"),
			}
			if err := foodRepo.Create(ctx, item); err != nil {
				log.Fatalf("Failed to create dish %q: %v", sd.Title, err)
			}
		}
		log.Printf("Seeded user %s with %d dishes", su.Username, len(su.Dishes))
	}

	for _, edge := range seedFollows {
		follower, followed := ids[edge[0]], ids[edge[1]]
		if follower == 0 || followed == 0 {
			continue
		}
		if err := followRepo.Create(ctx, follower, followed); err != nil {
			log.Fatalf("Failed to create follow %s -> %s: %v", edge[0], edge[1], err)
		}
	}
	log.Printf("Seeded %d follow edges", len(seedFollows))

	log.Println("Seed completed")
}
