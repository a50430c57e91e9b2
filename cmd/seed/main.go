package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotelio/internal/catalog"
	"hotelio/internal/shared/config"
	"hotelio/internal/shared/database"
	"hotelio/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Hotelio Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"refund_requests",
		"payment_captures",
		"bookings",
		"resources",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedResources(userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed resources: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin and 2 guest users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		phone     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@hotelio.test", "+919800000001", users.RoleAdmin},
		{"guest1", "Asha", "Patel", "asha.patel@hotelio.test", "+919800000002", users.RoleGuest},
		{"guest2", "Rohan", "Mehta", "rohan.mehta@hotelio.test", "+919800000003", users.RoleGuest},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Phone:     userData.phone,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedResources creates rooms, banquet halls and restaurant tables
func (s *Seeder) SeedResources(adminID uuid.UUID) error {
	fmt.Println("  🏨 Seeding resources...")

	resourcesData := []struct {
		name        string
		description string
		category    catalog.ResourceCategory
		roomType    string
		basePrice   float64
		capacity    int
	}{
		{"Room 101", "Deluxe room with garden view", catalog.CategoryRoom, "DELUXE", 4500.0, 2},
		{"Room 102", "Deluxe room with garden view", catalog.CategoryRoom, "DELUXE", 4500.0, 2},
		{"Room 201", "Executive suite with balcony", catalog.CategoryRoom, "SUITE", 9000.0, 4},
		{"Room 202", "Executive suite with balcony", catalog.CategoryRoom, "SUITE", 9000.0, 4},
		{"Room 301", "Standard twin room", catalog.CategoryRoom, "STANDARD", 3000.0, 3},

		{"Grand Ballroom", "Banquet hall for weddings and conferences", catalog.CategoryBanquet, "", 150000.0, 500},
		{"Crystal Hall", "Mid-sized banquet hall with stage", catalog.CategoryBanquet, "", 80000.0, 200},

		{"Table 1", "Window table for two", catalog.CategoryTable, "", 500.0, 2},
		{"Table 2", "Window table for two", catalog.CategoryTable, "", 500.0, 2},
		{"Table 5", "Family table near the terrace", catalog.CategoryTable, "", 800.0, 6},
		{"Table 9", "Private dining alcove", catalog.CategoryTable, "", 1200.0, 8},
	}

	for _, data := range resourcesData {
		resource := catalog.Resource{
			ID:          uuid.New(),
			Name:        data.name,
			Description: data.description,
			Category:    data.category,
			RoomType:    data.roomType,
			BasePrice:   data.basePrice,
			Capacity:    data.capacity,
			Status:      catalog.StatusAvailable,
			CreatedBy:   adminID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&resource).Error; err != nil {
			return fmt.Errorf("failed to create resource %s: %w", resource.Name, err)
		}

		fmt.Printf("    ✅ Created resource: %s (%s)\n", resource.Name, resource.Category)
	}

	return nil
}
