package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/productsuite/productsuite-api/models"
	"github.com/productsuite/productsuite-api/utils"
)

var DB *gorm.DB

// seedAccounts are the accounts inserted the first time the store is
// created. The curro account keeps its broad incidencia visibility through
// the supervisor flag rather than the admin role.
var seedAccounts = []struct {
	Username   string
	Password   string
	Fullname   string
	Role       string
	Supervisor bool
}{
	{"admin", "admin123", "Administrador General", "admin", false},
	{"tania", "tania123", "Tania", "worker", false},
	{"pepa", "pepa123", "Pepa", "worker", false},
	{"chari", "chari123", "Chari", "worker", false},
	{"lourdes", "lourdes123", "Lourdes", "worker", false},
	{"eva", "eva123", "Eva", "worker", false},
	{"curro", "curro123", "Curro", "worker", true},
	{"josemiguel", "josemiguel123", "Jose Miguel", "worker", false},
}

// ConnectDatabase opens the persistent store, migrates the schema and seeds
// the default accounts. When DATABASE_URL is set it connects to PostgreSQL;
// otherwise it creates/opens the embedded SQLite file under the data
// directory. It runs once at startup, before the server accepts requests.
func ConnectDatabase(cfg *Config) error {
	var err error
	if cfg.DatabaseURL != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
		}
		dbPath := filepath.Join(cfg.DataDir, "pedidos.db")
		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to open database at %s: %w", dbPath, err)
		}
		log.Printf("Using embedded database at %s", dbPath)
	}

	if err := DB.AutoMigrate(&models.User{}, &models.Pedido{}, &models.Incidencia{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := SeedUsers(DB); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// SeedUsers inserts the default accounts if they are not present.
// Safe to call any number of times.
func SeedUsers(db *gorm.DB) error {
	for _, acc := range seedAccounts {
		var existing models.User
		err := db.Where("username = ?", acc.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("looking up seed user %s: %w", acc.Username, err)
		}

		hashed, err := utils.HashPassword(acc.Password)
		if err != nil {
			return fmt.Errorf("hashing password for seed user %s: %w", acc.Username, err)
		}
		user := models.User{
			Username:              acc.Username,
			Password:              hashed,
			Fullname:              acc.Fullname,
			Role:                  acc.Role,
			SupervisorIncidencias: acc.Supervisor,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("creating seed user %s: %w", acc.Username, err)
		}
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
