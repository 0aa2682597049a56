package config

import (
	"log"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Superadmin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin seeds the default superadmin account so a fresh
// install is usable. The password must be changed after first login.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return nil // superadmin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:        "System Administrator",
		Username:    "admin",
		Password:    hashedPassword,
		Role:        string(domain.RoleSuperAdmin),
		Permissions: domain.NewPermissionSet(domain.PermissionAll),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Superadmin user created: %s", admin.Username)
	return nil
}
