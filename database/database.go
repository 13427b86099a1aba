package database

import (
	"fmt"
	"log"
	"os"

	"netlab/config"
	"netlab/models"
	labModels "netlab/models/lab"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance; services receive the handle
// explicitly at construction, this exists for startup wiring only
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Project{},
		&labModels.Lab{},
		&labModels.Environment{},
		&labModels.Topology{},
		&labModels.Node{},
		&labModels.Interface{},
		&labModels.Link{},
		&labModels.Note{},
		&labModels.Guide{},
		&labModels.Section{},
		&labModels.ContentBlock{},
		&labModels.Task{},
		&labModels.Verification{},
		&labModels.Resource{},
		&labModels.LabSettings{},
		&models.Progress{},
		&models.LabProgress{},
		&models.LabSubmission{},
		&models.SubmissionFile{},
		&models.FileCleanup{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
