package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fundspark/fundspark-backend/api"
	"github.com/fundspark/fundspark-backend/config"
	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/models"
	"github.com/fundspark/fundspark-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	settings := config.Load()
	if settings.BotToken == "" {
		fmt.Println("Warning: BOT_TOKEN is not set, telegram logins will be rejected")
	}
	if settings.Origin == "" {
		fmt.Println("Warning: ORIGIN is not set, CORS allows any origin and upload URLs are host-relative")
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Trigram search needs pg_trgm; without it the in-process fallback ranks
	// results instead.
	trigramSearch := true
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pg_trgm\"").Error; err != nil {
		fmt.Printf("Warning: pg_trgm extension unavailable, using fallback search: %v\n", err)
		trigramSearch = false
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectLike{},
		&models.ProjectView{},
		&models.ProjectShare{},
	); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db, trigramSearch)

	uploader, err := services.NewUploader(settings)
	if err != nil {
		fmt.Printf("Error preparing upload storage: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, settings, uploader)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
