package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/database"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/config"
	pkgjwt "github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/jwt"
)

func main() {
	log.Println("🚀 Starting seed data creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Println("🗑️  Cleaning up existing seed users...")
	db.Where("user_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@seed.local").Delete(&entities.TeamMember{})
	db.Where("email LIKE ?", "%@seed.local").Delete(&entities.User{})

	company := &entities.Company{ID: uuid.New(), Name: "Acme Industries"}
	if err := db.Create(company).Error; err != nil {
		log.Fatalf("❌ Failed to create company: %v", err)
	}
	log.Printf("🏢 Company %s (%s)", company.Name, company.ID)

	seedUsers := []struct {
		Email string
		Name  string
		Role  entities.UserRole
	}{
		{Email: "alice@seed.local", Name: "Alice", Role: entities.RoleAdmin},
		{Email: "bob@seed.local", Name: "Bob", Role: entities.RoleEditor},
		{Email: "charlie@seed.local", Name: "Charlie", Role: entities.RoleViewer},
		{Email: "diana@seed.local", Name: "Diana", Role: entities.RoleBoard},
		{Email: "eve@seed.local", Name: "Eve", Role: entities.RoleArchiver},
	}

	team := &entities.Team{ID: uuid.New(), Name: "Leadership", CompanyID: company.ID}
	if err := db.Create(team).Error; err != nil {
		log.Fatalf("❌ Failed to create team: %v", err)
	}
	log.Printf("👥 Team %s (%s)", team.Name, team.ID)

	log.Println("🔑 Creating seed users and tokens...")
	var users []*entities.User
	for _, su := range seedUsers {
		user := &entities.User{
			ID:        uuid.New(),
			Email:     su.Email,
			Name:      su.Name,
			Role:      su.Role,
			CompanyID: company.ID,
		}
		if err := db.Create(user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", su.Email, err)
			continue
		}
		users = append(users, user)

		member := &entities.TeamMember{
			ID:     uuid.New(),
			TeamID: team.ID,
			UserID: user.ID,
			Role:   su.Role,
		}
		if err := db.Create(member).Error; err != nil {
			log.Printf("❌ Failed to add %s to team: %v", su.Email, err)
		}

		accessToken, err := jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", su.Email, err)
			continue
		}
		log.Printf("👤 %s <%s> role=%s", user.Name, user.Email, user.Role)
		log.Printf("   token: %s", accessToken)
	}
	if len(users) == 0 {
		log.Fatal("❌ No users created, aborting")
	}

	meeting := &entities.Meeting{
		ID:          uuid.New(),
		Title:       "Leadership - Weekly " + time.Now().Format("2006-01-02"),
		TeamID:      team.ID,
		Status:      entities.MeetingStatusActive,
		MeetingDate: time.Now(),
	}
	if err := db.Create(meeting).Error; err != nil {
		log.Fatalf("❌ Failed to create meeting: %v", err)
	}
	log.Printf("📅 Active meeting %s (%s)", meeting.Title, meeting.ID)

	metrics := []*entities.ScorecardMetric{
		{ID: uuid.New(), Name: "Weekly Revenue", Target: 50000, Unit: "USD", TeamID: team.ID},
		{ID: uuid.New(), Name: "New Leads", Target: 25, Unit: "count", TeamID: team.ID},
		{ID: uuid.New(), Name: "Support CSAT", Target: 4.5, Unit: "score", TeamID: team.ID},
	}
	for _, m := range metrics {
		if err := db.Create(m).Error; err != nil {
			log.Printf("❌ Failed to create metric %s: %v", m.Name, err)
			continue
		}
		log.Printf("📊 Metric %s target=%.1f %s", m.Name, m.Target, m.Unit)
	}

	dueDate := time.Now().AddDate(0, 3, 0)
	rock := &entities.Rock{
		ID:      uuid.New(),
		Title:   "Launch self-serve onboarding",
		Status:  entities.RockStatusOnTrack,
		OwnerID: users[0].ID,
		TeamID:  team.ID,
		DueDate: &dueDate,
	}
	if err := db.Create(rock).Error; err != nil {
		log.Fatalf("❌ Failed to create rock: %v", err)
	}
	milestone := &entities.RockMilestone{
		ID:     uuid.New(),
		RockID: rock.ID,
		Title:  "Ship signup flow",
	}
	if err := db.Create(milestone).Error; err != nil {
		log.Printf("❌ Failed to create milestone: %v", err)
	}
	log.Printf("🪨 Rock %s due %s", rock.Title, dueDate.Format("2006-01-02"))

	log.Println("✅ Seed complete")
}
