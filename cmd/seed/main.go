// Seeds a demo account with a few habits and backdated check-ins so the API
// has interesting streak and stats numbers out of the box.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"habitflow/internal/config"
	"habitflow/internal/database"
	"habitflow/internal/domain"
	"habitflow/internal/pkg/dates"
	"habitflow/internal/repository"
)

const (
	demoEmail    = "demo@habitflow.local"
	demoPassword = "demo-password-123"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	habits := repository.NewHabitRepository(db)
	checkIns := repository.NewCheckInRepository(db)

	if exists, err := users.ExistsByEmail(ctx, demoEmail); err != nil {
		log.Fatalf("seed: %v", err)
	} else if exists {
		log.Printf("seed: %s already exists, nothing to do", demoEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	user := &domain.User{
		Email:        demoEmail,
		PasswordHash: string(hash),
		Name:         "Demo User",
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	today := dates.Normalize(time.Now().UTC())

	// daysAgo lists offsets from today that get a check-in.
	seeds := []struct {
		name        string
		description string
		kind        string
		daysAgo     []int
	}{
		{
			name:        "Morning run",
			description: "5km before work",
			kind:        domain.KindBuild,
			daysAgo:     []int{0, 1, 2, 3, 4, 7, 8},
		},
		{
			name:        "Read 20 pages",
			description: "",
			kind:        domain.KindBuild,
			daysAgo:     []int{1, 2, 5},
		},
		{
			name:        "No late-night snacks",
			description: "Kitchen closes at 21:00",
			kind:        domain.KindBreak,
			daysAgo:     []int{0, 1, 2},
		},
	}

	for _, s := range seeds {
		h := &domain.Habit{
			UserID:      user.ID,
			Name:        s.name,
			Description: s.description,
			Kind:        s.kind,
			Frequency:   "daily",
		}
		if err := habits.Create(ctx, h); err != nil {
			log.Fatalf("seed habit %q: %v", s.name, err)
		}
		for _, ago := range s.daysAgo {
			c := &domain.CheckIn{
				HabitID: h.ID,
				Date:    today.AddDate(0, 0, -ago),
			}
			if err := checkIns.Create(ctx, c); err != nil {
				log.Fatalf("seed check-in for %q: %v", s.name, err)
			}
		}
		log.Printf("seeded habit %q with %d check-ins", s.name, len(s.daysAgo))
	}

	log.Printf("seed complete: login with %s / %s", demoEmail, demoPassword)
}
